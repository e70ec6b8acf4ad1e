package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stockfit/stockfit/pkg/config"
	"github.com/stockfit/stockfit/pkg/provider"
	"github.com/stockfit/stockfit/pkg/scoring"
	"github.com/stockfit/stockfit/pkg/surface"
)

// metricFlags maps each per-metric flag to its key.
var metricFlags = []struct {
	name  string
	key   scoring.Key
	usage string
}{
	{"pe", scoring.KeyPE, "Price/earnings ratio"},
	{"eps-growth", scoring.KeyEPSGrowth, "5y EPS growth (%)"},
	{"debt-equity", scoring.KeyDebtEquity, "Debt-to-equity ratio"},
	{"profit-margin", scoring.KeyProfitMargin, "Net profit margin (%)"},
	{"dividend-yield", scoring.KeyDividendYield, "Dividend yield (%)"},
	{"esg-score", scoring.KeyESGScore, "ESG score (0-100)"},
	{"beta", scoring.KeyBeta, "Beta"},
}

type scoreOpts struct {
	ticker     string
	configPath string
	file       string
	fractions  bool
	outputFmt  string
	values     map[scoring.Key]string
	weights    map[string]string
}

func newScoreCmd() *cobra.Command {
	opts := scoreOpts{values: make(map[scoring.Key]string)}
	raw := make(map[string]*string, len(metricFlags))

	cmd := &cobra.Command{
		Use:   "score [TICKER]",
		Short: "Score a ticker or a set of metric values",
		Long: `Looks up TICKER in the metrics file and the demo fixtures, applies any
per-metric flags on top, and prints the score, verdict and breakdown.
Missing metrics score 0.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.ticker = args[0]
			}
			opts.configPath, _ = cmd.Flags().GetString("config")
			for _, mf := range metricFlags {
				if cmd.Flags().Changed(mf.name) {
					opts.values[mf.key] = *raw[mf.name]
				}
			}
			if !cmd.Flags().Changed("output") {
				opts.outputFmt = ""
			}
			return runScore(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	for _, mf := range metricFlags {
		raw[mf.name] = cmd.Flags().String(mf.name, "", mf.usage)
	}
	cmd.Flags().StringVar(&opts.file, "file", "", "YAML/JSON metrics file (ticker -> metrics)")
	cmd.Flags().BoolVar(&opts.fractions, "percent-as-fraction", false, "Percent metrics in --file are fractions (0.025 = 2.5%)")
	cmd.Flags().StringVar(&opts.outputFmt, "output", "text", "Output format: text, json or notes")
	cmd.Flags().StringToStringVar(&opts.weights, "weight", nil, "Weight override, e.g. --weight pe=20,beta=5")

	return cmd
}

func runScore(ctx context.Context, stdout, stderr io.Writer, opts scoreOpts) error {
	cfg, err := config.LoadFrom(opts.configPath)
	if err != nil {
		return err
	}

	prov, err := buildProvider(cfg.Fixtures, opts.file, opts.fractions)
	if err != nil {
		return err
	}

	ticker := provider.NormalizeTicker(opts.ticker)
	if ticker == "" && len(opts.values) == 0 {
		return errors.New("provide a TICKER or at least one metric flag")
	}

	m := scoring.EmptyMetrics()
	if ticker != "" {
		m, err = prov.Metrics(ctx, ticker)
		if err != nil {
			if !errors.Is(err, provider.ErrUnknownTicker) || len(opts.values) == 0 {
				return err
			}
			fmt.Fprintf(stderr, "Warning: %v; scoring flag values only\n", err)
			m = scoring.EmptyMetrics()
		}
	}
	for k, v := range opts.values {
		m.Set(k, scoring.ParseValue(v))
	}

	weights, err := cfg.EffectiveWeights()
	if err != nil {
		return err
	}
	overrides, err := parseWeightFlags(opts.weights)
	if err != nil {
		return err
	}
	if err := config.ApplyWeightOverrides(weights, overrides); err != nil {
		return err
	}

	renderer, err := surface.ForFormat(firstNonEmpty(opts.outputFmt, cfg.Output.Format, "text"))
	if err != nil {
		return err
	}

	ev := scoring.NewEngine(scoring.DefaultMetrics()...).Evaluate(m, weights)
	return renderer.Render(stdout, ticker, ev)
}

// buildProvider chains the metrics file (if any) in front of the fixtures.
// A file given on the command line replaces the configured one.
func buildProvider(fc config.FixturesConfig, file string, fractions bool) (provider.Chain, error) {
	opts := fc.FileOptions()
	if fractions {
		opts.PercentAsFraction = true
	}
	var chain provider.Chain
	if file = firstNonEmpty(file, fc.File); file != "" {
		p, err := provider.LoadFile(file, opts)
		if err != nil {
			return nil, err
		}
		chain = append(chain, p)
	}
	return append(chain, provider.Fixtures()), nil
}

func parseWeightFlags(flags map[string]string) (map[string]float64, error) {
	out := make(map[string]float64, len(flags))
	for name, v := range flags {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("--weight %s: invalid number %q", name, v)
		}
		out[name] = f
	}
	return out, nil
}
