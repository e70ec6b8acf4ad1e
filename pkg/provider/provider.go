// Package provider supplies raw metrics records to the scoring engine.
// Providers are interchangeable: fixtures, metrics files, or anything
// else that can produce a scoring.Metrics for a ticker.
package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/stockfit/stockfit/pkg/scoring"
)

// ErrUnknownTicker is returned when a provider has no record for a ticker.
var ErrUnknownTicker = errors.New("unknown ticker")

// Provider looks up the metrics record of a ticker.
type Provider interface {
	// Metrics returns the record for ticker. Values the provider does not
	// know are absent (NaN).
	Metrics(ctx context.Context, ticker string) (scoring.Metrics, error)
}

// Lister is implemented by providers with a finite set of tickers.
type Lister interface {
	Tickers() []string
}

// NormalizeTicker upper-cases and trims a ticker symbol.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Static serves records from an in-memory map keyed by normalized ticker.
type Static struct {
	records map[string]scoring.Metrics
}

// NewStatic creates a Static provider. Tickers are normalized.
func NewStatic(records map[string]scoring.Metrics) *Static {
	s := &Static{records: make(map[string]scoring.Metrics, len(records))}
	for ticker, m := range records {
		s.records[NormalizeTicker(ticker)] = m
	}
	return s
}

func (s *Static) Metrics(ctx context.Context, ticker string) (scoring.Metrics, error) {
	m, ok := s.records[NormalizeTicker(ticker)]
	if !ok {
		return scoring.EmptyMetrics(), fmt.Errorf("%w: %s", ErrUnknownTicker, NormalizeTicker(ticker))
	}
	return m, nil
}

// Tickers returns the known tickers in sorted order.
func (s *Static) Tickers() []string {
	tickers := make([]string, 0, len(s.records))
	for t := range s.records {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

// Chain asks each provider in turn; the first one that knows the ticker wins.
type Chain []Provider

func (c Chain) Metrics(ctx context.Context, ticker string) (scoring.Metrics, error) {
	for _, p := range c {
		m, err := p.Metrics(ctx, ticker)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, ErrUnknownTicker) {
			return scoring.EmptyMetrics(), err
		}
	}
	return scoring.EmptyMetrics(), fmt.Errorf("%w: %s", ErrUnknownTicker, NormalizeTicker(ticker))
}

// Tickers merges the tickers of every listing provider in the chain.
func (c Chain) Tickers() []string {
	seen := make(map[string]bool)
	var tickers []string
	for _, p := range c {
		l, ok := p.(Lister)
		if !ok {
			continue
		}
		for _, t := range l.Tickers() {
			if !seen[t] {
				seen[t] = true
				tickers = append(tickers, t)
			}
		}
	}
	sort.Strings(tickers)
	return tickers
}
