package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/stockfit/stockfit/pkg/scoring"
)

// NotesRenderer writes a plain-text summary suitable for pasting into an
// investment journal.
type NotesRenderer struct{}

var nextSteps = []string{
	"Compare against 2-3 peers; confirm valuation vs. sector median",
	"Read latest 10-K/earnings call for qualitative risks",
	"Validate ESG score from at least two sources",
}

func (r *NotesRenderer) Render(w io.Writer, ticker string, ev *scoring.Evaluation) error {
	_, err := io.WriteString(w, BuildNotes(ticker, ev))
	return err
}

// BuildNotes returns the analyst notes text for an evaluation.
func BuildNotes(ticker string, ev *scoring.Evaluation) string {
	var sb strings.Builder

	if ticker == "" {
		ticker = "(unspecified)"
	}
	sb.WriteString(fmt.Sprintf("Ticker: %s\n", ticker))
	sb.WriteString(fmt.Sprintf("Overall Score: %d - %s\n", ev.Score, ev.Verdict.Label))
	if ev.TotalWeight != 100 {
		sb.WriteString(fmt.Sprintf("Weight total: %g (target 100)\n", ev.TotalWeight))
	}
	sb.WriteString("\n")

	sb.WriteString("Key Metrics:\n")
	for _, mr := range ev.Breakdown {
		sb.WriteString(fmt.Sprintf("- %s: %s | Subscore: %.0f\n", mr.Name, formatRaw(mr.Raw), mr.Subscore))
	}
	sb.WriteString("\n")

	sb.WriteString("Next Steps:\n")
	for _, s := range nextSteps {
		sb.WriteString(fmt.Sprintf("- %s\n", s))
	}

	return sb.String()
}
