package scoring

// PEMetric scores the price/earnings ratio. Desirability peaks at Center and
// decays linearly; ratios inside [BandLow, BandHigh] earn a flat bonus.
type PEMetric struct {
	Center    float64
	Tolerance float64 // distance from Center at which the base score reaches 0
	BandLow   float64
	BandHigh  float64
	BandBonus float64
}

func (m *PEMetric) Key() Key     { return KeyPE }
func (m *PEMetric) Name() string { return "P/E ratio" }

// Score returns 0 for absent or non-positive ratios.
func (m *PEMetric) Score(pe float64) float64 {
	if IsAbsent(pe) || pe <= 0 {
		return 0
	}
	return applyAdjustments(pe, linearTent(pe, m.Center, m.Tolerance), m.Adjustments())
}

func (m *PEMetric) Adjustments() []Adjustment {
	return []Adjustment{
		{
			Name: "pe_band_bonus",
			Apply: func(pe, score float64) float64 {
				if pe >= m.BandLow && pe <= m.BandHigh {
					return Clamp(score+m.BandBonus, 0, 100)
				}
				return score
			},
		},
	}
}
