package reports

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/stockfit/stockfit/pkg/scoring"
)

// Index records report summaries for lookup by ID and ticker.
type Index interface {
	Insert(ctx context.Context, s Summary) error
	Lookup(ctx context.Context, id string) (*Summary, error)
	List(ctx context.Context, ticker string, limit int) ([]Summary, error)
}

// MemoryIndex is an in-process Index. Used when no database is configured.
type MemoryIndex struct {
	mu   sync.RWMutex
	rows map[string]Summary
}

// NewMemoryIndex creates an empty MemoryIndex.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{rows: make(map[string]Summary)}
}

func (m *MemoryIndex) Insert(ctx context.Context, s Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[s.ID]; ok {
		return fmt.Errorf("insert report %s: duplicate id", s.ID)
	}
	m.rows[s.ID] = s
	return nil
}

func (m *MemoryIndex) Lookup(ctx context.Context, id string) (*Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &s, nil
}

// List returns the newest summaries first. An empty ticker matches all.
func (m *MemoryIndex) List(ctx context.Context, ticker string, limit int) ([]Summary, error) {
	m.mu.RLock()
	out := make([]Summary, 0, len(m.rows))
	for _, s := range m.rows {
		if ticker == "" || s.Ticker == ticker {
			out = append(out, s)
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// PostgresIndex stores summaries in the reports table.
type PostgresIndex struct {
	db *sql.DB
}

// NewPostgresIndex creates an Index backed by db. The schema is created by
// platform.AutoMigrate.
func NewPostgresIndex(db *sql.DB) *PostgresIndex {
	return &PostgresIndex{db: db}
}

func (p *PostgresIndex) Insert(ctx context.Context, s Summary) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO reports (id, ticker, score, band, label, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Ticker, s.Score, string(s.Band), s.Label, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report %s: %w", s.ID, err)
	}
	return nil
}

func (p *PostgresIndex) Lookup(ctx context.Context, id string) (*Summary, error) {
	s := &Summary{}
	var band string
	err := p.db.QueryRowContext(ctx,
		`SELECT id, ticker, score, band, label, created_at
		 FROM reports WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Ticker, &s.Score, &band, &s.Label, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup report %s: %w", id, err)
	}
	s.Band = scoring.Band(band)
	return s, nil
}

func (p *PostgresIndex) List(ctx context.Context, ticker string, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, ticker, score, band, label, created_at
		 FROM reports
		 WHERE ($1 = '' OR ticker = $1)
		 ORDER BY created_at DESC, id
		 LIMIT $2`,
		ticker, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		var band string
		if err := rows.Scan(&s.ID, &s.Ticker, &s.Score, &band, &s.Label, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		s.Band = scoring.Band(band)
		out = append(out, s)
	}
	return out, rows.Err()
}
