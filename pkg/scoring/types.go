// Package scoring implements the stockfit suitability engine.
// Seven raw financial metrics are normalized to 0-100 subscores and combined
// with a caller-owned weight set into a single score and verdict.
package scoring

import (
	"math"
	"strings"
)

// Key identifies one of the seven scored metrics.
type Key string

const (
	KeyPE            Key = "pe"
	KeyEPSGrowth     Key = "eps_growth"
	KeyDebtEquity    Key = "debt_equity"
	KeyProfitMargin  Key = "profit_margin"
	KeyDividendYield Key = "dividend_yield"
	KeyESGScore      Key = "esg_score"
	KeyBeta          Key = "beta"
)

// Keys returns all metric keys in display order.
func Keys() []Key {
	return []Key{
		KeyPE,
		KeyEPSGrowth,
		KeyDebtEquity,
		KeyProfitMargin,
		KeyDividendYield,
		KeyESGScore,
		KeyBeta,
	}
}

// IsPercent reports whether the metric is expressed in percent, so a
// provider delivering fractions must scale it with FractionToPercent.
func (k Key) IsPercent() bool {
	switch k {
	case KeyEPSGrowth, KeyProfitMargin, KeyDividendYield:
		return true
	}
	return false
}

var keyAliases = map[string]Key{
	"pe":               KeyPE,
	"eps_growth":       KeyEPSGrowth,
	"epsgrowth":        KeyEPSGrowth,
	"epsgrowth5ypct":   KeyEPSGrowth,
	"debt_equity":      KeyDebtEquity,
	"debtequity":       KeyDebtEquity,
	"debttoequity":     KeyDebtEquity,
	"profit_margin":    KeyProfitMargin,
	"profitmargin":     KeyProfitMargin,
	"profitmarginpct":  KeyProfitMargin,
	"dividend_yield":   KeyDividendYield,
	"dividendyield":    KeyDividendYield,
	"dividendyieldpct": KeyDividendYield,
	"esg_score":        KeyESGScore,
	"esgscore":         KeyESGScore,
	"esg":              KeyESGScore,
	"beta":             KeyBeta,
}

// ParseKey resolves a metric name, accepting snake_case keys and the
// camelCase field names used by form and provider payloads.
func ParseKey(s string) (Key, bool) {
	k, ok := keyAliases[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

// Metrics is one raw metrics record. Absent values are NaN.
type Metrics struct {
	PE            float64 // price/earnings ratio
	EPSGrowth     float64 // 5y EPS CAGR, percent
	DebtEquity    float64 // debt-to-equity ratio
	ProfitMargin  float64 // net profit margin, percent
	DividendYield float64 // dividend yield, percent
	ESGScore      float64 // 0-100
	Beta          float64
}

// EmptyMetrics returns a record with every value absent.
func EmptyMetrics() Metrics {
	nan := math.NaN()
	return Metrics{
		PE:            nan,
		EPSGrowth:     nan,
		DebtEquity:    nan,
		ProfitMargin:  nan,
		DividendYield: nan,
		ESGScore:      nan,
		Beta:          nan,
	}
}

// Value returns the raw value for key, or NaN for an unknown key.
func (m Metrics) Value(k Key) float64 {
	switch k {
	case KeyPE:
		return m.PE
	case KeyEPSGrowth:
		return m.EPSGrowth
	case KeyDebtEquity:
		return m.DebtEquity
	case KeyProfitMargin:
		return m.ProfitMargin
	case KeyDividendYield:
		return m.DividendYield
	case KeyESGScore:
		return m.ESGScore
	case KeyBeta:
		return m.Beta
	default:
		return math.NaN()
	}
}

// Set assigns the raw value for key. Unknown keys are ignored.
func (m *Metrics) Set(k Key, v float64) {
	switch k {
	case KeyPE:
		m.PE = v
	case KeyEPSGrowth:
		m.EPSGrowth = v
	case KeyDebtEquity:
		m.DebtEquity = v
	case KeyProfitMargin:
		m.ProfitMargin = v
	case KeyDividendYield:
		m.DividendYield = v
	case KeyESGScore:
		m.ESGScore = v
	case KeyBeta:
		m.Beta = v
	}
}

// Merge returns a copy of m where every value present in override replaces
// the corresponding value of m.
func (m Metrics) Merge(override Metrics) Metrics {
	out := m
	for _, k := range Keys() {
		if v := override.Value(k); !IsAbsent(v) {
			out.Set(k, v)
		}
	}
	return out
}

// Missing lists the keys whose values are absent.
func (m Metrics) Missing() []Key {
	var keys []Key
	for _, k := range Keys() {
		if IsAbsent(m.Value(k)) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Subscores maps each metric to its 0-100 subscore.
type Subscores map[Key]float64

// Band is the verdict classification tier.
type Band string

const (
	BandStrong   Band = "strong"
	BandModerate Band = "moderate"
	BandAvoid    Band = "avoid"
)

// Verdict thresholds, inclusive lower bounds on the rounded score.
const (
	StrongBuyThreshold   = 80
	ModerateBuyThreshold = 65
)

// Verdict is the label attached to an aggregate score.
type Verdict struct {
	Label string `json:"label"`
	Band  Band   `json:"band"`
	Color string `json:"color"` // display tag: green, amber, red
}

var (
	VerdictStrongBuy   = Verdict{Label: "Strong Buy", Band: BandStrong, Color: "green"}
	VerdictModerateBuy = Verdict{Label: "Moderate Buy", Band: BandModerate, Color: "amber"}
	VerdictAvoid       = Verdict{Label: "Avoid", Band: BandAvoid, Color: "red"}
)

// VerdictFromScore maps a rounded aggregate score to its verdict.
func VerdictFromScore(score int) Verdict {
	switch {
	case score >= StrongBuyThreshold:
		return VerdictStrongBuy
	case score >= ModerateBuyThreshold:
		return VerdictModerateBuy
	default:
		return VerdictAvoid
	}
}

// MetricResult is the scored view of a single metric within an Evaluation.
type MetricResult struct {
	Key          Key     `json:"key"`
	Name         string  `json:"name"`
	Raw          float64 `json:"raw"` // NaN when absent, encoded as null
	Present      bool    `json:"present"`
	Subscore     float64 `json:"subscore"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"` // points of the final score
}

// Evaluation is the complete output of scoring one metrics record.
// Immutable once computed.
type Evaluation struct {
	Score       int            `json:"score"`
	Verdict     Verdict        `json:"verdict"`
	TotalWeight float64        `json:"total_weight"`
	Breakdown   []MetricResult `json:"breakdown"`
}

// Subscores returns the breakdown's subscores keyed by metric.
func (e *Evaluation) Subscores() Subscores {
	s := make(Subscores, len(e.Breakdown))
	for _, mr := range e.Breakdown {
		s[mr.Key] = mr.Subscore
	}
	return s
}

// Result returns the breakdown entry for key.
func (e *Evaluation) Result(k Key) (MetricResult, bool) {
	for _, mr := range e.Breakdown {
		if mr.Key == k {
			return mr, true
		}
	}
	return MetricResult{}, false
}
