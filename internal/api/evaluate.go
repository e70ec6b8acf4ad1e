package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stockfit/stockfit/pkg/config"
	"github.com/stockfit/stockfit/pkg/provider"
	"github.com/stockfit/stockfit/pkg/scoring"
)

const maxRequestBody = 1 << 20

type evaluateRequest struct {
	Ticker  string             `json:"ticker"`
	Metrics *scoring.Metrics   `json:"metrics"`
	Weights map[string]float64 `json:"weights"`
}

type evaluateResponse struct {
	Ticker string `json:"ticker,omitempty"`
	*scoring.Evaluation
	Missing  []scoring.Key `json:"missing,omitempty"`
	ReportID string        `json:"report_id,omitempty"`
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ticker := provider.NormalizeTicker(req.Ticker)
	if ticker == "" && req.Metrics == nil {
		writeError(w, http.StatusBadRequest, "metrics or ticker is required")
		return
	}

	m := scoring.EmptyMetrics()
	if ticker != "" {
		known, err := h.provider.Metrics(r.Context(), ticker)
		switch {
		case err == nil:
			m = known
		case errors.Is(err, provider.ErrUnknownTicker):
			if req.Metrics == nil {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
		default:
			writeError(w, http.StatusBadGateway, "metrics lookup failed: "+err.Error())
			return
		}
	}
	if req.Metrics != nil {
		m = m.Merge(*req.Metrics)
	}

	weights := h.weights.Clone()
	if err := config.ApplyWeightOverrides(weights, req.Weights); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ev := h.engine.Evaluate(m, weights)
	resp := evaluateResponse{Ticker: ticker, Evaluation: ev, Missing: m.Missing()}

	if h.reports != nil {
		report, err := h.reports.Record(r.Context(), ticker, ev)
		if err != nil {
			h.log.Error().Err(err).Str("ticker", ticker).Msg("record report")
			writeError(w, http.StatusInternalServerError, "failed to record report")
			return
		}
		h.cache.Put(report.ID, report)
		resp.ReportID = report.ID
	}

	writeJSON(w, http.StatusOK, resp)
}
