package scoring

// DefaultMetrics returns the seven normalizers configured with Defaults().
func DefaultMetrics() []Metric {
	return MetricsFromParams(Defaults())
}

// MetricsFromParams builds the seven normalizers in display order.
func MetricsFromParams(p Params) []Metric {
	return []Metric{
		&PEMetric{
			Center:    p.PECenter,
			Tolerance: p.PETolerance,
			BandLow:   p.PEBandLow,
			BandHigh:  p.PEBandHigh,
			BandBonus: p.PEBandBonus,
		},
		&EPSGrowthMetric{
			Floor:   p.EPSGrowthFloor,
			Ceiling: p.EPSGrowthCeiling,
		},
		&DebtEquityMetric{
			Best:  p.DebtEquityBest,
			Worst: p.DebtEquityWorst,
		},
		&ProfitMarginMetric{
			Ceiling: p.ProfitMarginCeiling,
		},
		&DividendMetric{
			ZeroYieldScore: p.DividendZeroScore,
			RedFlagAbove:   p.DividendRedFlag,
			Peak:           p.DividendPeak,
			Spread:         p.DividendSpread,
			Floor:          p.DividendFloor,
		},
		&ESGMetric{},
		&BetaMetric{
			Center:      p.BetaCenter,
			Tolerance:   p.BetaTolerance,
			CapAbove:    p.BetaCapAbove,
			CapMaxScore: p.BetaCapMaxScore,
		},
	}
}

// DefaultWeights returns a fresh copy of the standard weight set (sums to 100).
func DefaultWeights() Weights {
	return Weights{
		KeyPE:            15,
		KeyEPSGrowth:     20,
		KeyDebtEquity:    15,
		KeyProfitMargin:  10,
		KeyDividendYield: 10,
		KeyESGScore:      20,
		KeyBeta:          10,
	}
}

var defaultMetrics = DefaultMetrics()

func defaultMetric(k Key) Metric {
	for _, m := range defaultMetrics {
		if m.Key() == k {
			return m
		}
	}
	return nil
}

// ScorePE scores a P/E ratio with the default policy.
func ScorePE(pe float64) float64 { return defaultMetric(KeyPE).Score(pe) }

// ScoreEPSGrowth scores 5y EPS growth (%) with the default policy.
func ScoreEPSGrowth(g float64) float64 { return defaultMetric(KeyEPSGrowth).Score(g) }

// ScoreD2E scores a debt-to-equity ratio with the default policy.
func ScoreD2E(d float64) float64 { return defaultMetric(KeyDebtEquity).Score(d) }

// ScoreMargin scores a net profit margin (%) with the default policy.
func ScoreMargin(m float64) float64 { return defaultMetric(KeyProfitMargin).Score(m) }

// ScoreDividend scores a dividend yield (%) with the default policy.
func ScoreDividend(y float64) float64 { return defaultMetric(KeyDividendYield).Score(y) }

// ScoreESG scores an ESG rating with the default policy.
func ScoreESG(e float64) float64 { return defaultMetric(KeyESGScore).Score(e) }

// ScoreBeta scores a beta coefficient with the default policy.
func ScoreBeta(b float64) float64 { return defaultMetric(KeyBeta).Score(b) }
