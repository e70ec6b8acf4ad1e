package surface

import (
	"encoding/json"
	"io"

	"github.com/stockfit/stockfit/pkg/scoring"
)

// JSONRenderer marshals an Evaluation to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, ticker string, ev *scoring.Evaluation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Ticker string `json:"ticker,omitempty"`
		*scoring.Evaluation
	}{Ticker: ticker, Evaluation: ev})
}
