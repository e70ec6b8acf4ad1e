package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// optFloat is a float64 whose JSON form is null when absent.
type optFloat float64

func (f optFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func (f *optFloat) UnmarshalJSON(data []byte) error {
	v, err := decodeValue(data)
	if err != nil {
		return err
	}
	*f = optFloat(v)
	return nil
}

// decodeValue accepts a JSON number, a numeric string or null.
func decodeValue(data []byte) (float64, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return math.NaN(), nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		return ParseValue(s), nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, fmt.Errorf("invalid metric value %s: %w", data, err)
	}
	return v, nil
}

type jsonMetrics struct {
	PE            optFloat `json:"pe"`
	EPSGrowth     optFloat `json:"eps_growth"`
	DebtEquity    optFloat `json:"debt_equity"`
	ProfitMargin  optFloat `json:"profit_margin"`
	DividendYield optFloat `json:"dividend_yield"`
	ESGScore      optFloat `json:"esg_score"`
	Beta          optFloat `json:"beta"`
}

// MarshalJSON encodes absent values as null.
func (m Metrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonMetrics{
		PE:            optFloat(m.PE),
		EPSGrowth:     optFloat(m.EPSGrowth),
		DebtEquity:    optFloat(m.DebtEquity),
		ProfitMargin:  optFloat(m.ProfitMargin),
		DividendYield: optFloat(m.DividendYield),
		ESGScore:      optFloat(m.ESGScore),
		Beta:          optFloat(m.Beta),
	})
}

// UnmarshalJSON decodes an object keyed by metric name (see ParseKey).
// Missing fields and nulls are absent; numeric strings are parsed.
func (m *Metrics) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode metrics: %w", err)
	}

	out := EmptyMetrics()
	for name, msg := range raw {
		k, ok := ParseKey(name)
		if !ok {
			return fmt.Errorf("unknown metric %q", name)
		}
		v, err := decodeValue(msg)
		if err != nil {
			return fmt.Errorf("metric %s: %w", name, err)
		}
		out.Set(k, v)
	}
	*m = out
	return nil
}

// MarshalJSON encodes an absent raw value as null.
func (r MetricResult) MarshalJSON() ([]byte, error) {
	type alias MetricResult
	return json.Marshal(struct {
		alias
		Raw optFloat `json:"raw"`
	}{alias: alias(r), Raw: optFloat(r.Raw)})
}

func (r *MetricResult) UnmarshalJSON(data []byte) error {
	type alias MetricResult
	aux := struct {
		*alias
		Raw optFloat `json:"raw"`
	}{alias: (*alias)(r), Raw: optFloat(math.NaN())}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Raw = float64(aux.Raw)
	return nil
}

// UnmarshalJSON decodes a weight object keyed by metric name.
func (w *Weights) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode weights: %w", err)
	}
	out := make(Weights, len(raw))
	for name, v := range raw {
		k, ok := ParseKey(name)
		if !ok {
			return fmt.Errorf("unknown metric %q", name)
		}
		out[k] = v
	}
	*w = out
	return nil
}
