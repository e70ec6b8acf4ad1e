package scoring

import "math"

// BetaMetric scores volatility. Desirability peaks at Center; betas above
// CapAbove never score more than CapMaxScore.
type BetaMetric struct {
	Center      float64
	Tolerance   float64
	CapAbove    float64
	CapMaxScore float64
}

func (m *BetaMetric) Key() Key     { return KeyBeta }
func (m *BetaMetric) Name() string { return "Beta" }

// Score returns 0 for absent or non-positive betas.
func (m *BetaMetric) Score(b float64) float64 {
	if IsAbsent(b) || b <= 0 {
		return 0
	}
	return applyAdjustments(b, linearTent(b, m.Center, m.Tolerance), m.Adjustments())
}

func (m *BetaMetric) Adjustments() []Adjustment {
	return []Adjustment{
		{
			Name: "beta_high_volatility_cap",
			Apply: func(b, score float64) float64 {
				if b > m.CapAbove {
					return math.Min(score, m.CapMaxScore)
				}
				return score
			},
		},
	}
}
