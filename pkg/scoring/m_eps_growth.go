package scoring

// EPSGrowthMetric scores 5-year EPS growth in percent. Any positive growth
// earns at least Floor; the score ramps linearly to 100 at Ceiling.
type EPSGrowthMetric struct {
	Floor   float64
	Ceiling float64
}

func (m *EPSGrowthMetric) Key() Key     { return KeyEPSGrowth }
func (m *EPSGrowthMetric) Name() string { return "EPS growth (5y)" }

func (m *EPSGrowthMetric) Score(g float64) float64 {
	if IsAbsent(g) || g <= 0 {
		return 0
	}
	base := 100.0
	if m.Ceiling > 0 {
		base = m.Floor + (g/m.Ceiling)*(100-m.Floor)
	}
	return applyAdjustments(g, base, m.Adjustments())
}

func (m *EPSGrowthMetric) Adjustments() []Adjustment {
	return []Adjustment{
		{
			Name: "eps_growth_saturation",
			Apply: func(g, score float64) float64 {
				if g >= m.Ceiling {
					return 100
				}
				return score
			},
		},
	}
}
