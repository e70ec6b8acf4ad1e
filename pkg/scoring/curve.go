package scoring

// Metric is the interface implemented by each of the seven normalizers.
type Metric interface {
	// Key returns the machine-readable metric identifier.
	Key() Key
	// Name returns the human-readable metric name.
	Name() string
	// Score maps a raw value (NaN when absent) to a subscore in [0, 100].
	Score(raw float64) float64
}

// Adjustment is one override layered on top of a curve's base formula.
// Adjustments run in order, each seeing the raw value and the score
// produced so far.
type Adjustment struct {
	Name  string
	Apply func(raw, score float64) float64
}

// Adjusted is implemented by metrics whose curve carries overrides.
type Adjusted interface {
	Adjustments() []Adjustment
}

// applyAdjustments runs adjs over base and clamps the final value.
func applyAdjustments(raw, base float64, adjs []Adjustment) float64 {
	score := base
	for _, a := range adjs {
		score = a.Apply(raw, score)
	}
	return Clamp(score, 0, 100)
}

// AdjustmentNames lists the overrides layered on m's curve, in order.
func AdjustmentNames(m Metric) []string {
	a, ok := m.(Adjusted)
	if !ok {
		return nil
	}
	adjs := a.Adjustments()
	names := make([]string, len(adjs))
	for i, adj := range adjs {
		names[i] = adj.Name
	}
	return names
}
