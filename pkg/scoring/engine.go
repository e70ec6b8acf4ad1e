package scoring

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Engine normalizes a metrics record with its configured metrics and
// aggregates the subscores. An Engine holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	metrics []Metric
}

// NewEngine creates a scoring engine with the given metrics.
func NewEngine(metrics ...Metric) *Engine {
	return &Engine{metrics: metrics}
}

// Metrics returns the engine's normalizers.
func (e *Engine) Metrics() []Metric {
	return e.metrics
}

// Subscores runs every configured metric over m. Metrics the engine does
// not carry are scored 0.
func (e *Engine) Subscores(m Metrics) Subscores {
	s := make(Subscores, len(Keys()))
	for _, k := range Keys() {
		s[k] = 0
	}
	for _, metric := range e.metrics {
		s[metric.Key()] = metric.Score(m.Value(metric.Key()))
	}
	return s
}

// Evaluate scores m against w. Absent values score 0 and still count
// toward the weighted mean.
func (e *Engine) Evaluate(m Metrics, w Weights) *Evaluation {
	subscores := e.Subscores(m)
	score, verdict := Aggregate(subscores, w)
	total := w.Total()

	result := &Evaluation{
		Score:       score,
		Verdict:     verdict,
		TotalWeight: total,
	}

	names := make(map[Key]string, len(e.metrics))
	for _, metric := range e.metrics {
		names[metric.Key()] = metric.Name()
	}

	for _, k := range Keys() {
		raw := m.Value(k)
		mr := MetricResult{
			Key:      k,
			Name:     names[k],
			Raw:      raw,
			Present:  !IsAbsent(raw),
			Subscore: subscores[k],
			Weight:   w[k],
		}
		if mr.Name == "" {
			mr.Name = string(k)
		}
		if total != 0 {
			mr.Contribution = mr.Subscore * mr.Weight / total
		}
		result.Breakdown = append(result.Breakdown, mr)
	}

	return result
}

// Aggregate combines subscores into a rounded weighted mean and its verdict.
//
// A zero total weight yields (0, Avoid). Halves round away from zero.
// The score is bounded to [0, 100].
func Aggregate(subscores Subscores, weights Weights) (int, Verdict) {
	total := weights.Total()
	if total == 0 {
		return 0, VerdictFromScore(0)
	}

	keys := Keys()
	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i] = subscores[k]
	}

	mean := stat.Mean(values, weights.vector())
	score := int(Clamp(math.Round(mean), 0, 100))
	return score, VerdictFromScore(score)
}
