package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockfit/stockfit/pkg/provider"
	"github.com/stockfit/stockfit/pkg/scoring"
)

// Service records and retrieves evaluation reports.
type Service struct {
	store BlobStore
	index Index
	log   zerolog.Logger
	now   func() time.Time
}

// NewService creates a Service. A nil index falls back to a MemoryIndex.
func NewService(store BlobStore, index Index, log zerolog.Logger) *Service {
	if index == nil {
		index = NewMemoryIndex()
	}
	return &Service{
		store: store,
		index: index,
		log:   log.With().Str("component", "reports").Logger(),
		now:   time.Now,
	}
}

// Record stores ev as a new report for ticker and returns it.
func (s *Service) Record(ctx context.Context, ticker string, ev *scoring.Evaluation) (*Report, error) {
	r := NewReport(ticker, ev, s.now())

	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	if err := s.store.PutReport(ctx, r.ID, data); err != nil {
		return nil, fmt.Errorf("store report: %w", err)
	}
	if err := s.index.Insert(ctx, r.Summary()); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("report_id", r.ID).
		Str("ticker", r.Ticker).
		Int("score", r.Score).
		Str("verdict", r.Verdict.Label).
		Msg("report recorded")
	return r, nil
}

// Get loads a report by ID.
func (s *Service) Get(ctx context.Context, id string) (*Report, error) {
	if !ValidID(id) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if _, err := s.index.Lookup(ctx, id); err != nil {
		return nil, err
	}
	data, err := s.store.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", id, err)
	}
	return &r, nil
}

// List returns recent summaries for ticker, newest first.
func (s *Service) List(ctx context.Context, ticker string, limit int) ([]Summary, error) {
	return s.index.List(ctx, provider.NormalizeTicker(ticker), limit)
}
