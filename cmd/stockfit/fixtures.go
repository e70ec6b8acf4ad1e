package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/stockfit/stockfit/pkg/config"
	"github.com/stockfit/stockfit/pkg/scoring"
)

func newFixturesCmd() *cobra.Command {
	var (
		file      string
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "List known tickers and their metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runFixtures(cmd.Context(), cmd.OutOrStdout(), configPath, file, outputFmt)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML/JSON metrics file (ticker -> metrics)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	return cmd
}

type fixtureRow struct {
	Ticker  string          `json:"ticker"`
	Metrics scoring.Metrics `json:"metrics"`
	Score   int             `json:"score"`
	Verdict string          `json:"verdict"`
}

func runFixtures(ctx context.Context, w io.Writer, configPath, file, outputFmt string) error {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return err
	}
	chain, err := buildProvider(cfg.Fixtures, file, false)
	if err != nil {
		return err
	}
	weights, err := cfg.EffectiveWeights()
	if err != nil {
		return err
	}

	engine := scoring.NewEngine(scoring.DefaultMetrics()...)
	var rows []fixtureRow
	for _, t := range chain.Tickers() {
		m, err := chain.Metrics(ctx, t)
		if err != nil {
			return err
		}
		ev := engine.Evaluate(m, weights)
		rows = append(rows, fixtureRow{Ticker: t, Metrics: m, Score: ev.Score, Verdict: ev.Verdict.Label})
	}

	switch outputFmt {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "text", "":
	default:
		return fmt.Errorf("unsupported format %q (want text or json)", outputFmt)
	}

	fmt.Fprintf(w, "%-8s", "TICKER")
	for _, k := range scoring.Keys() {
		fmt.Fprintf(w, " %14s", k)
	}
	fmt.Fprintf(w, " %6s  %s\n", "SCORE", "VERDICT")
	for _, r := range rows {
		fmt.Fprintf(w, "%-8s", r.Ticker)
		for _, k := range scoring.Keys() {
			fmt.Fprintf(w, " %14s", formatValue(r.Metrics.Value(k)))
		}
		fmt.Fprintf(w, " %6d  %s\n", r.Score, r.Verdict)
	}
	return nil
}

func formatValue(v float64) string {
	if scoring.IsAbsent(v) {
		return "?"
	}
	return fmt.Sprintf("%g", v)
}
