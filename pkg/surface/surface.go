// Package surface defines output rendering for stockfit evaluations.
// Implementations handle different output targets: terminal, JSON and
// plain-text analyst notes.
package surface

import (
	"fmt"
	"io"

	"github.com/stockfit/stockfit/pkg/scoring"
)

// Renderer produces formatted output from an Evaluation.
type Renderer interface {
	// Render writes the formatted evaluation of ticker to the writer.
	// ticker may be empty for ad-hoc metrics.
	Render(w io.Writer, ticker string, ev *scoring.Evaluation) error
}

// ForFormat returns the renderer for an output format name.
func ForFormat(format string) (Renderer, error) {
	switch format {
	case "", "text":
		return &TerminalRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	case "notes":
		return &NotesRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// formatRaw prints a raw metric value, or "?" when absent.
func formatRaw(v float64) string {
	if scoring.IsAbsent(v) {
		return "?"
	}
	return fmt.Sprintf("%g", v)
}
