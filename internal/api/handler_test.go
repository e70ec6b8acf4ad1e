package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfit/stockfit/internal/reports"
	"github.com/stockfit/stockfit/pkg/scoring"
)

func newTestHandler(t *testing.T, withHistory bool) *Handler {
	t.Helper()
	opts := Options{Logger: zerolog.Nop()}
	if withHistory {
		opts.Reports = reports.NewService(reports.NewLocalStore(t.TempDir()), reports.NewMemoryIndex(), zerolog.Nop())
	}
	return NewHandler(opts)
}

func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type evalBody struct {
	Ticker      string          `json:"ticker"`
	Score       int             `json:"score"`
	Verdict     scoring.Verdict `json:"verdict"`
	TotalWeight float64         `json:"total_weight"`
	Breakdown   []struct {
		Key      scoring.Key `json:"key"`
		Raw      *float64    `json:"raw"`
		Present  bool        `json:"present"`
		Subscore float64     `json:"subscore"`
	} `json:"breakdown"`
	Missing  []scoring.Key `json:"missing"`
	ReportID string        `json:"report_id"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestEvaluateMetrics(t *testing.T) {
	router := NewRouter(newTestHandler(t, false), RouterConfig{})

	body := `{"metrics": {"pe": 30.2, "epsGrowth": "18.5", "debtEquity": 1.6, "profitMargin": 26.1,
		"dividendYield": 0.6, "esgScore": 76, "beta": 1.12}}`
	rec := do(t, router, http.MethodPost, "/api/v1/evaluate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[evalBody](t, rec)
	assert.Equal(t, 65, got.Score)
	assert.Equal(t, "Moderate Buy", got.Verdict.Label)
	assert.Equal(t, scoring.BandModerate, got.Verdict.Band)
	assert.Equal(t, 100.0, got.TotalWeight)
	assert.Len(t, got.Breakdown, 7)
	assert.Empty(t, got.ReportID)
	assert.Empty(t, got.Missing)
}

func TestEvaluateTickerWithOverrides(t *testing.T) {
	router := NewRouter(newTestHandler(t, false), RouterConfig{})

	rec := do(t, router, http.MethodPost, "/api/v1/evaluate", `{"ticker": "aapl"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[evalBody](t, rec)
	assert.Equal(t, "AAPL", got.Ticker)
	assert.Equal(t, 65, got.Score)

	// A perfect margin override lifts the score; zeroing every weight but
	// profit margin makes the score equal that subscore.
	rec = do(t, router, http.MethodPost, "/api/v1/evaluate", `{"ticker": "AAPL",
		"metrics": {"profit_margin": 45},
		"weights": {"pe": 0, "eps_growth": 0, "debt_equity": 0, "dividend_yield": 0, "esg_score": 0, "beta": 0}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got = decode[evalBody](t, rec)
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, "Strong Buy", got.Verdict.Label)
	assert.Equal(t, 10.0, got.TotalWeight)
}

func TestEvaluateMissingValuesScoreZero(t *testing.T) {
	router := NewRouter(newTestHandler(t, false), RouterConfig{})

	rec := do(t, router, http.MethodPost, "/api/v1/evaluate", `{"metrics": {"esg_score": 100, "beta": null}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[evalBody](t, rec)
	assert.Equal(t, 20, got.Score)
	assert.Equal(t, "Avoid", got.Verdict.Label)
	assert.Len(t, got.Missing, 6)
	for _, mr := range got.Breakdown {
		if mr.Key == scoring.KeyBeta {
			assert.Nil(t, mr.Raw)
			assert.False(t, mr.Present)
			assert.Equal(t, 0.0, mr.Subscore)
		}
	}
}

func TestEvaluateZeroWeights(t *testing.T) {
	router := NewRouter(newTestHandler(t, false), RouterConfig{})

	rec := do(t, router, http.MethodPost, "/api/v1/evaluate", `{"ticker": "NEE",
		"weights": {"pe": 0, "eps_growth": 0, "debt_equity": 0, "profit_margin": 0, "dividend_yield": 0, "esg_score": 0, "beta": 0}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[evalBody](t, rec)
	assert.Equal(t, 0, got.Score)
	assert.Equal(t, "Avoid", got.Verdict.Label)
}

func TestEvaluateErrors(t *testing.T) {
	router := NewRouter(newTestHandler(t, false), RouterConfig{})

	tests := []struct {
		name   string
		body   string
		status int
		errMsg string
	}{
		{"malformed body", `{`, http.StatusBadRequest, "invalid request body"},
		{"empty request", `{}`, http.StatusBadRequest, "metrics or ticker is required"},
		{"unknown field", `{"metricz": {}}`, http.StatusBadRequest, "invalid request body"},
		{"unknown metric", `{"metrics": {"volume": 3}}`, http.StatusBadRequest, "unknown metric"},
		{"unknown ticker", `{"ticker": "ZZZZ"}`, http.StatusNotFound, "unknown ticker"},
		{"unknown weight", `{"ticker": "AAPL", "weights": {"volume": 3}}`, http.StatusBadRequest, "unknown metric"},
		{"negative weight", `{"ticker": "AAPL", "weights": {"beta": -3}}`, http.StatusBadRequest, "non-negative"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/v1/evaluate", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.errMsg)
		})
	}
}

func TestEvaluateUnknownTickerWithMetrics(t *testing.T) {
	router := NewRouter(newTestHandler(t, false), RouterConfig{})

	rec := do(t, router, http.MethodPost, "/api/v1/evaluate", `{"ticker": "zzzz", "metrics": {"esg_score": 50}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[evalBody](t, rec)
	assert.Equal(t, "ZZZZ", got.Ticker)
	assert.Equal(t, 10, got.Score)
}

func TestDefaultWeights(t *testing.T) {
	router := NewRouter(newTestHandler(t, false), RouterConfig{})

	rec := do(t, router, http.MethodGet, "/api/v1/weights/default", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[struct {
		Weights map[string]float64 `json:"weights"`
		Total   float64            `json:"total"`
	}](t, rec)
	assert.Equal(t, 100.0, got.Total)
	assert.Equal(t, 20.0, got.Weights["eps_growth"])
	assert.Len(t, got.Weights, 7)
}

func TestListMetrics(t *testing.T) {
	router := NewRouter(newTestHandler(t, false), RouterConfig{})

	rec := do(t, router, http.MethodGet, "/api/v1/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[[]struct {
		Key         scoring.Key `json:"key"`
		Weight      float64     `json:"weight"`
		Adjustments []string    `json:"adjustments"`
	}](t, rec)
	require.Len(t, got, 7)
	assert.Equal(t, scoring.KeyPE, got[0].Key)
	assert.Equal(t, []string{"pe_band_bonus"}, got[0].Adjustments)
	assert.Equal(t, 15.0, got[0].Weight)
	assert.Equal(t, scoring.KeyBeta, got[6].Key)
	assert.Equal(t, []string{"beta_high_volatility_cap"}, got[6].Adjustments)
	assert.Empty(t, got[2].Adjustments)
}

func TestFixtures(t *testing.T) {
	router := NewRouter(newTestHandler(t, false), RouterConfig{})

	rec := do(t, router, http.MethodGet, "/api/v1/fixtures", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]struct {
		Ticker string `json:"ticker"`
		Score  int    `json:"score"`
	}](t, rec)
	require.Len(t, list, 3)
	scores := map[string]int{}
	for _, f := range list {
		scores[f.Ticker] = f.Score
	}
	assert.Equal(t, map[string]int{"AAPL": 65, "JNJ": 71, "NEE": 76}, scores)

	rec = do(t, router, http.MethodGet, "/api/v1/fixtures/jnj", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[evalBody](t, rec)
	assert.Equal(t, "JNJ", got.Ticker)
	assert.Equal(t, 71, got.Score)

	rec = do(t, router, http.MethodGet, "/api/v1/fixtures/ZZZZ", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportsDisabled(t *testing.T) {
	router := NewRouter(newTestHandler(t, false), RouterConfig{})

	for _, path := range []string{"/api/v1/reports", "/api/v1/reports/0b8f3f0e-1f35-4a4e-9a77-1f0c3c3b6d20"} {
		rec := do(t, router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "history is disabled")
	}
}

func TestReportsHistory(t *testing.T) {
	h := newTestHandler(t, true)
	router := NewRouter(h, RouterConfig{})

	rec := do(t, router, http.MethodPost, "/api/v1/evaluate", `{"ticker": "NEE"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[evalBody](t, rec)
	require.NotEmpty(t, got.ReportID)
	assert.Equal(t, 1, h.cache.Len())

	rec = do(t, router, http.MethodGet, "/api/v1/reports/"+got.ReportID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[reports.Report](t, rec)
	assert.Equal(t, "NEE", report.Ticker)
	assert.Equal(t, 76, report.Score)

	// Evict the cached copy and load from the store.
	h.cache = NewReportCache(1)
	rec = do(t, router, http.MethodGet, "/api/v1/reports/"+got.ReportID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, h.cache.Len())

	rec = do(t, router, http.MethodGet, "/api/v1/reports?ticker=nee", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]reports.Summary](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, got.ReportID, list[0].ID)

	rec = do(t, router, http.MethodGet, "/api/v1/reports?ticker=AAPL", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/v1/reports?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/reports/0b8f3f0e-1f35-4a4e-9a77-1f0c3c3b6d20", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIKeyAuth(t *testing.T) {
	router := NewRouter(newTestHandler(t, false), RouterConfig{APIKey: "secret"})

	rec := do(t, router, http.MethodGet, "/api/v1/weights/default", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/weights/default", "", "X-API-Key", "secret")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	h := NewHandler(Options{
		Logger: zerolog.Nop(),
		Health: func(context.Context) error { return errors.New("connection refused") },
	})
	rec := do(t, NewRouter(h, RouterConfig{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	router := NewRouter(newTestHandler(t, false), RouterConfig{APIKey: "secret", AllowedOrigins: []string{"https://app.example.com"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/evaluate", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEqual(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(Options{Logger: zerolog.New(&buf)})
	rec := do(t, NewRouter(h, RouterConfig{}), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	line := buf.String()
	assert.Contains(t, line, `"path":"/healthz"`)
	assert.Contains(t, line, `"status":200`)
	assert.Contains(t, line, `"method":"GET"`)
}

func TestEvaluateRejectsNonFiniteWeights(t *testing.T) {
	router := NewRouter(newTestHandler(t, false), RouterConfig{})

	// JSON has no NaN literal; large exponents overflow to an error too.
	rec := do(t, router, http.MethodPost, "/api/v1/evaluate", `{"ticker": "AAPL", "weights": {"pe": 1e999}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnencodableResponseIsServerError(t *testing.T) {
	h := NewHandler(Options{
		Logger:  zerolog.Nop(),
		Weights: scoring.Weights{scoring.KeyPE: math.NaN()},
	})
	rec := do(t, NewRouter(h, RouterConfig{}), http.MethodGet, "/api/v1/weights/default", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to encode response")
}
