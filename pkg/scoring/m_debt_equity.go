package scoring

// DebtEquityMetric scores leverage; lower is strictly better.
type DebtEquityMetric struct {
	Best  float64 // ratios at or below score 100
	Worst float64 // ratios at or above score 0
}

func (m *DebtEquityMetric) Key() Key     { return KeyDebtEquity }
func (m *DebtEquityMetric) Name() string { return "Debt/Equity" }

// Score returns 0 for absent or negative ratios.
func (m *DebtEquityMetric) Score(d float64) float64 {
	if IsAbsent(d) || d < 0 {
		return 0
	}
	return descendingRamp(d, m.Best, m.Worst)
}
