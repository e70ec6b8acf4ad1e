package scoring

import "gonum.org/v1/gonum/floats"

// Weights maps each metric to a non-negative weight. The sum is advisory
// (target 100) and never enforced; a missing key weighs 0.
type Weights map[Key]float64

// Total sums the weights of the seven metrics.
func (w Weights) Total() float64 {
	return floats.Sum(w.vector())
}

// Clone returns an independent copy of w.
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// vector returns the weights in display order.
func (w Weights) vector() []float64 {
	keys := Keys()
	v := make([]float64, len(keys))
	for i, k := range keys {
		v[i] = w[k]
	}
	return v
}
