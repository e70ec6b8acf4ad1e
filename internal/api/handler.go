// Package api implements the stockfit REST API.
// It evaluates metrics records, serves the demo fixtures and default
// weights, and exposes the optional evaluation history.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/stockfit/stockfit/internal/reports"
	"github.com/stockfit/stockfit/pkg/provider"
	"github.com/stockfit/stockfit/pkg/scoring"
)

// Options configures a Handler. Only Engine is required.
type Options struct {
	Engine   *scoring.Engine
	Weights  scoring.Weights   // base weight set; defaults when nil
	Provider provider.Provider // ticker lookup; fixtures when nil
	Reports  *reports.Service  // nil disables history
	Cache    *ReportCache
	Health   func(ctx context.Context) error
	Logger   zerolog.Logger
}

// Handler is the top-level API handler for the stockfit service.
type Handler struct {
	engine   *scoring.Engine
	weights  scoring.Weights
	provider provider.Provider
	reports  *reports.Service
	cache    *ReportCache
	health   func(ctx context.Context) error
	log      zerolog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(opts Options) *Handler {
	engine := opts.Engine
	if engine == nil {
		engine = scoring.NewEngine(scoring.DefaultMetrics()...)
	}
	weights := opts.Weights
	if weights == nil {
		weights = scoring.DefaultWeights()
	}
	prov := opts.Provider
	if prov == nil {
		prov = provider.Fixtures()
	}
	cache := opts.Cache
	if cache == nil {
		cache = NewReportCache(0)
	}
	return &Handler{
		engine:   engine,
		weights:  weights.Clone(),
		provider: prov,
		reports:  opts.Reports,
		cache:    cache,
		health:   opts.Health,
		log:      opts.Logger.With().Str("component", "api").Logger(),
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/evaluate", h.handleEvaluate)
	mux.HandleFunc("GET /api/v1/weights/default", h.handleDefaultWeights)
	mux.HandleFunc("GET /api/v1/metrics", h.handleListMetrics)
	mux.HandleFunc("GET /api/v1/fixtures", h.handleListFixtures)
	mux.HandleFunc("GET /api/v1/fixtures/{ticker}", h.handleGetFixture)
	mux.HandleFunc("GET /api/v1/reports", h.handleListReports)
	mux.HandleFunc("GET /api/v1/reports/{reportID}", h.handleGetReport)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health(r.Context()); err != nil {
			h.log.Warn().Err(err).Msg("health check failed")
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleDefaultWeights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, weightsResponse{
		Weights: h.weights,
		Total:   h.weights.Total(),
	})
}

type metricInfo struct {
	Key         scoring.Key `json:"key"`
	Name        string      `json:"name"`
	Weight      float64     `json:"weight"`
	Adjustments []string    `json:"adjustments"`
}

func (h *Handler) handleListMetrics(w http.ResponseWriter, r *http.Request) {
	metrics := h.engine.Metrics()
	out := make([]metricInfo, 0, len(metrics))
	for _, m := range metrics {
		adjs := scoring.AdjustmentNames(m)
		if adjs == nil {
			adjs = []string{}
		}
		out = append(out, metricInfo{
			Key:         m.Key(),
			Name:        m.Name(),
			Weight:      h.weights[m.Key()],
			Adjustments: adjs,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type weightsResponse struct {
	Weights scoring.Weights `json:"weights"`
	Total   float64         `json:"total"`
}

// writeJSON encodes data before writing the header so an unencodable value
// becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
