// Package main provides the stockfit CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stockfit",
		Short: "Score stocks against a fixed investment policy",
		Long: `Stockfit normalizes seven financial metrics into 0-100 subscores,
combines them with adjustable weights into a single suitability score,
and classifies the result as Strong Buy, Moderate Buy or Avoid.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: discover .stockfit/config.yaml)")

	rootCmd.AddCommand(
		newScoreCmd(),
		newFixturesCmd(),
		newWeightsCmd(),
	)
	return rootCmd
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
