package scoring

import "math"

// DividendMetric scores dividend yield (%) with a Gaussian bump around Peak.
//
// A zero yield is acceptable for growth stocks and earns ZeroYieldScore.
// Yields above RedFlagAbove signal an unsustainable payout and score 0.
// Any other positive yield keeps at least Floor.
type DividendMetric struct {
	ZeroYieldScore float64
	RedFlagAbove   float64
	Peak           float64
	Spread         float64
	Floor          float64
}

func (m *DividendMetric) Key() Key     { return KeyDividendYield }
func (m *DividendMetric) Name() string { return "Dividend yield" }

func (m *DividendMetric) Score(y float64) float64 {
	switch {
	case IsAbsent(y) || y < 0:
		return 0
	case y == 0:
		return Clamp(m.ZeroYieldScore, 0, 100)
	case y > m.RedFlagAbove:
		return 0
	}
	return applyAdjustments(y, m.gaussian(y), m.Adjustments())
}

func (m *DividendMetric) gaussian(y float64) float64 {
	if m.Spread <= 0 {
		if y == m.Peak {
			return 100
		}
		return 0
	}
	z := (y - m.Peak) / m.Spread
	return 100 * math.Exp(-0.5*z*z)
}

func (m *DividendMetric) Adjustments() []Adjustment {
	return []Adjustment{
		{
			Name: "dividend_residual_floor",
			Apply: func(_, score float64) float64 {
				return math.Max(score, m.Floor)
			},
		},
	}
}
