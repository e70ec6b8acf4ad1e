package scoring

// ProfitMarginMetric scores net margin (%) proportionally up to Ceiling.
type ProfitMarginMetric struct {
	Ceiling float64
}

func (m *ProfitMarginMetric) Key() Key     { return KeyProfitMargin }
func (m *ProfitMarginMetric) Name() string { return "Profit margin" }

func (m *ProfitMarginMetric) Score(pm float64) float64 {
	if IsAbsent(pm) || pm <= 0 {
		return 0
	}
	if m.Ceiling <= 0 || pm >= m.Ceiling {
		return 100
	}
	return Clamp((pm/m.Ceiling)*100, 0, 100)
}
