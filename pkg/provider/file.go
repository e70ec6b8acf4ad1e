package provider

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stockfit/stockfit/pkg/scoring"
)

// value decodes a YAML scalar into a raw metric value. Blank and
// unparseable scalars are absent; nulls decode to a nil *value.
type value float64

func (v *value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: metric value must be a scalar", node.Line)
	}
	*v = value(scoring.ParseValue(node.Value))
	return nil
}

func (v *value) float() float64 {
	if v == nil {
		return math.NaN()
	}
	return float64(*v)
}

// FileOptions controls how a metrics file is interpreted.
type FileOptions struct {
	// PercentAsFraction marks percent metrics (EPS growth, profit margin,
	// dividend yield) as written as fractions, e.g. 0.025 for 2.5%.
	PercentAsFraction bool
}

// LoadFile reads a YAML or JSON document mapping ticker -> metrics, e.g.
//
//	MSFT:
//	  pe: 35.1
//	  eps_growth: 14
//	  dividend_yield: ""
//
// Metric names accept the same aliases as scoring.ParseKey.
func LoadFile(path string, opts FileOptions) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metrics file: %w", err)
	}
	return ParseFile(data, opts)
}

// ParseFile decodes the document format accepted by LoadFile.
func ParseFile(data []byte, opts FileOptions) (*Static, error) {
	var doc map[string]map[string]*value
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing metrics file: %w", err)
	}

	records := make(map[string]scoring.Metrics, len(doc))
	for ticker, fields := range doc {
		if strings.TrimSpace(ticker) == "" {
			return nil, fmt.Errorf("parsing metrics file: empty ticker")
		}
		m := scoring.EmptyMetrics()
		for name, v := range fields {
			k, ok := scoring.ParseKey(name)
			if !ok {
				return nil, fmt.Errorf("parsing metrics file: %s: unknown metric %q", ticker, name)
			}
			raw := v.float()
			if opts.PercentAsFraction && k.IsPercent() {
				raw = scoring.FractionToPercent(raw)
			}
			m.Set(k, raw)
		}
		records[ticker] = m
	}
	return NewStatic(records), nil
}
