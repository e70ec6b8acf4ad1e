package scoring

// ESGMetric passes the 0-100 ESG rating through, clamped.
type ESGMetric struct{}

func (m *ESGMetric) Key() Key     { return KeyESGScore }
func (m *ESGMetric) Name() string { return "ESG score" }

func (m *ESGMetric) Score(e float64) float64 {
	if IsAbsent(e) || e < 0 {
		return 0
	}
	return Clamp(e, 0, 100)
}
