package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stockfit/stockfit/pkg/scoring"
)

// TerminalRenderer renders an Evaluation as styled terminal output.
// Styling degrades to plain text when the output is not a color terminal
// or NO_COLOR is set.
type TerminalRenderer struct{}

var (
	colorRed   = lipgloss.Color("#FF5555")
	colorAmber = lipgloss.Color("#FFB86C")
	colorGreen = lipgloss.Color("#50FA7B")
	colorGray  = lipgloss.Color("#6272A4")

	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(colorGray)
	barStyle   = lipgloss.NewStyle().Foreground(colorGray)
)

const barWidth = 20

func verdictStyle(band scoring.Band) lipgloss.Style {
	switch band {
	case scoring.BandStrong:
		return lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	case scoring.BandModerate:
		return lipgloss.NewStyle().Bold(true).Foreground(colorAmber)
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	}
}

func (r *TerminalRenderer) Render(w io.Writer, ticker string, ev *scoring.Evaluation) error {
	vs := verdictStyle(ev.Verdict.Band)

	// Header
	header := fmt.Sprintf("Score %d/100", ev.Score)
	if ticker != "" {
		header = ticker + ": " + header
	}
	fmt.Fprintf(w, "%s  %s\n", titleStyle.Render(header), vs.Render(ev.Verdict.Label))
	if ev.TotalWeight != 100 {
		fmt.Fprintf(w, "%s\n", dimStyle.Render(fmt.Sprintf("Weight total %g (target 100)", ev.TotalWeight)))
	}
	fmt.Fprintln(w)

	// Breakdown
	for _, mr := range ev.Breakdown {
		raw := formatRaw(mr.Raw)
		fmt.Fprintf(w, "  %-16s %8s  %s %5.1f  %s\n",
			mr.Name, raw, barStyle.Render(bar(mr.Subscore)), mr.Subscore,
			dimStyle.Render(fmt.Sprintf("w=%g +%.1f", mr.Weight, mr.Contribution)))
	}
	fmt.Fprintln(w)

	var missing []string
	for _, mr := range ev.Breakdown {
		if !mr.Present {
			missing = append(missing, mr.Name)
		}
	}
	if len(missing) > 0 {
		fmt.Fprintf(w, "%s\n\n", dimStyle.Render("Missing (scored 0): "+strings.Join(missing, ", ")))
	}

	return nil
}

// bar draws a fixed-width gauge for a 0-100 subscore.
func bar(score float64) string {
	filled := int(scoring.Clamp(score, 0, 100) / 100 * barWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
