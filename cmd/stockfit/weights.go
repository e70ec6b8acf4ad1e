package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stockfit/stockfit/pkg/config"
	"github.com/stockfit/stockfit/pkg/scoring"
)

func newWeightsCmd() *cobra.Command {
	var (
		overrides map[string]string
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Print the effective weight set",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runWeights(cmd.OutOrStdout(), configPath, overrides, outputFmt)
		},
	}

	cmd.Flags().StringToStringVar(&overrides, "weight", nil, "Weight override, e.g. --weight pe=20,beta=5")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	return cmd
}

func runWeights(w io.Writer, configPath string, flags map[string]string, outputFmt string) error {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return err
	}
	weights, err := cfg.EffectiveWeights()
	if err != nil {
		return err
	}
	overrides, err := parseWeightFlags(flags)
	if err != nil {
		return err
	}
	if err := config.ApplyWeightOverrides(weights, overrides); err != nil {
		return err
	}

	switch outputFmt {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Weights scoring.Weights `json:"weights"`
			Total   float64         `json:"total"`
		}{weights, weights.Total()})
	case "text", "":
	default:
		return fmt.Errorf("unsupported format %q (want text or json)", outputFmt)
	}

	for _, m := range scoring.NewEngine(scoring.DefaultMetrics()...).Metrics() {
		fmt.Fprintf(w, "%-16s %6g", m.Key(), weights[m.Key()])
		if adjs := scoring.AdjustmentNames(m); len(adjs) > 0 {
			fmt.Fprintf(w, "  [%s]", strings.Join(adjs, ", "))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%-16s %6g", "total", weights.Total())
	if weights.Total() != 100 {
		fmt.Fprint(w, "  (target 100)")
	}
	fmt.Fprintln(w)
	return nil
}
