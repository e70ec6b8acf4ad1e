// Package reports keeps an optional history of evaluations. Each report is
// written as a JSON blob to a BlobStore and indexed for lookup by ticker.
// Only derived values are stored; raw metric inputs are never persisted.
package reports

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/stockfit/stockfit/pkg/provider"
	"github.com/stockfit/stockfit/pkg/scoring"
)

// ErrNotFound is returned when a report does not exist.
var ErrNotFound = errors.New("report not found")

// Report is the stored record of one evaluation.
type Report struct {
	ID          string            `json:"id"`
	Ticker      string            `json:"ticker"`
	Score       int               `json:"score"`
	Verdict     scoring.Verdict   `json:"verdict"`
	TotalWeight float64           `json:"total_weight"`
	Subscores   scoring.Subscores `json:"subscores"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Summary is the indexed view of a report.
type Summary struct {
	ID        string       `json:"id"`
	Ticker    string       `json:"ticker"`
	Score     int          `json:"score"`
	Band      scoring.Band `json:"band"`
	Label     string       `json:"label"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewReport builds a report for ev with a fresh ID.
func NewReport(ticker string, ev *scoring.Evaluation, now time.Time) *Report {
	return &Report{
		ID:          uuid.NewString(),
		Ticker:      provider.NormalizeTicker(ticker),
		Score:       ev.Score,
		Verdict:     ev.Verdict,
		TotalWeight: ev.TotalWeight,
		Subscores:   ev.Subscores(),
		CreatedAt:   now.UTC(),
	}
}

// Summary returns the index entry for r.
func (r *Report) Summary() Summary {
	return Summary{
		ID:        r.ID,
		Ticker:    r.Ticker,
		Score:     r.Score,
		Band:      r.Verdict.Band,
		Label:     r.Verdict.Label,
		CreatedAt: r.CreatedAt,
	}
}

// ValidID reports whether id is a well-formed report ID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
