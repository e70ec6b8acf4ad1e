package provider_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stockfit/stockfit/pkg/provider"
	"github.com/stockfit/stockfit/pkg/scoring"
)

func TestFixtures(t *testing.T) {
	p := provider.Fixtures()
	ctx := context.Background()

	m, err := p.Metrics(ctx, " aapl ")
	if err != nil {
		t.Fatalf("Metrics(aapl): %v", err)
	}
	if m.PE != 30.2 || m.Beta != 1.12 {
		t.Errorf("unexpected AAPL record: %+v", m)
	}

	want := []string{"AAPL", "JNJ", "NEE"}
	got := p.Tickers()
	if len(got) != len(want) {
		t.Fatalf("Tickers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tickers()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	_, err = p.Metrics(ctx, "ZZZZ")
	if !errors.Is(err, provider.ErrUnknownTicker) {
		t.Errorf("expected ErrUnknownTicker, got %v", err)
	}
}

func TestParseFile(t *testing.T) {
	doc := `
msft:
  pe: 35.1
  epsGrowth5yPct: "14"
  debt_equity: 0.4
  dividend_yield: ""
  beta:
bad:
  esg_score: n/a
`
	p, err := provider.ParseFile([]byte(doc), provider.FileOptions{})
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	m, err := p.Metrics(context.Background(), "MSFT")
	if err != nil {
		t.Fatalf("Metrics(MSFT): %v", err)
	}
	if m.PE != 35.1 || m.EPSGrowth != 14 || m.DebtEquity != 0.4 {
		t.Errorf("unexpected values: %+v", m)
	}
	for _, k := range []scoring.Key{scoring.KeyDividendYield, scoring.KeyBeta, scoring.KeyProfitMargin, scoring.KeyESGScore} {
		if !math.IsNaN(m.Value(k)) {
			t.Errorf("%s should be absent, got %v", k, m.Value(k))
		}
	}

	bad, err := p.Metrics(context.Background(), "bad")
	if err != nil {
		t.Fatalf("Metrics(bad): %v", err)
	}
	if !math.IsNaN(bad.ESGScore) {
		t.Errorf("unparseable value should be absent, got %v", bad.ESGScore)
	}
}

func TestParseFileJSON(t *testing.T) {
	p, err := provider.ParseFile([]byte(`{"KO": {"pe": 24, "dividendYield": 3.0, "esgScore": null}}`), provider.FileOptions{})
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	m, err := p.Metrics(context.Background(), "ko")
	if err != nil {
		t.Fatalf("Metrics(ko): %v", err)
	}
	if m.PE != 24 || m.DividendYield != 3 || !math.IsNaN(m.ESGScore) {
		t.Errorf("unexpected record: %+v", m)
	}
}

func TestParseFileErrors(t *testing.T) {
	tests := map[string]string{
		"unknown metric": "X:\n  volume: 3\n",
		"not a mapping":  "- a\n- b\n",
		"nested value":   "X:\n  pe: [1, 2]\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := provider.ParseFile([]byte(doc), provider.FileOptions{}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.yaml")
	if err := os.WriteFile(path, []byte("T:\n  pe: 10\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, err := provider.LoadFile(path, provider.FileOptions{})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := p.Tickers(); len(got) != 1 || got[0] != "T" {
		t.Errorf("Tickers() = %v", got)
	}

	if _, err := provider.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), provider.FileOptions{}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestChain(t *testing.T) {
	override := provider.NewStatic(map[string]scoring.Metrics{
		"AAPL": {PE: 10},
		"ZZZZ": {PE: 11},
	})
	chain := provider.Chain{override, provider.Fixtures()}
	ctx := context.Background()

	m, err := chain.Metrics(ctx, "AAPL")
	if err != nil || m.PE != 10 {
		t.Errorf("first provider should win, got %+v, %v", m, err)
	}
	m, err = chain.Metrics(ctx, "NEE")
	if err != nil || m.PE != 22.4 {
		t.Errorf("fallback provider should answer, got %+v, %v", m, err)
	}
	if _, err := chain.Metrics(ctx, "NOPE"); !errors.Is(err, provider.ErrUnknownTicker) {
		t.Errorf("expected ErrUnknownTicker, got %v", err)
	}

	if got := chain.Tickers(); len(got) != 4 {
		t.Errorf("Tickers() = %v, want 4 unique tickers", got)
	}
}

func TestParseFilePercentAsFraction(t *testing.T) {
	doc := `
KO:
  pe: 24
  eps_growth: 0.05
  profit_margin: "0.22"
  dividend_yield: 0.031
  debt_equity: 1.6
  esg_score: 70
  beta:
`
	p, err := provider.ParseFile([]byte(doc), provider.FileOptions{PercentAsFraction: true})
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	m, err := p.Metrics(context.Background(), "KO")
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}

	for _, tc := range []struct {
		key  scoring.Key
		want float64
	}{
		{scoring.KeyEPSGrowth, 5},
		{scoring.KeyProfitMargin, 22},
		{scoring.KeyDividendYield, 3.1},
		{scoring.KeyPE, 24},
		{scoring.KeyDebtEquity, 1.6},
		{scoring.KeyESGScore, 70},
	} {
		if got := m.Value(tc.key); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", tc.key, got, tc.want)
		}
	}
	if !math.IsNaN(m.Beta) {
		t.Errorf("blank beta should stay absent, got %v", m.Beta)
	}
}
