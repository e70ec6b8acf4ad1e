package api

import (
	"errors"
	"net/http"

	"github.com/stockfit/stockfit/pkg/provider"
	"github.com/stockfit/stockfit/pkg/scoring"
)

type fixtureSummary struct {
	Ticker  string          `json:"ticker"`
	Metrics scoring.Metrics `json:"metrics"`
	Score   int             `json:"score"`
	Verdict scoring.Verdict `json:"verdict"`
}

func (h *Handler) handleListFixtures(w http.ResponseWriter, r *http.Request) {
	lister, ok := h.provider.(provider.Lister)
	if !ok {
		writeJSON(w, http.StatusOK, []fixtureSummary{})
		return
	}

	tickers := lister.Tickers()
	out := make([]fixtureSummary, 0, len(tickers))
	for _, t := range tickers {
		m, err := h.provider.Metrics(r.Context(), t)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load fixture: "+err.Error())
			return
		}
		ev := h.engine.Evaluate(m, h.weights)
		out = append(out, fixtureSummary{Ticker: t, Metrics: m, Score: ev.Score, Verdict: ev.Verdict})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetFixture(w http.ResponseWriter, r *http.Request) {
	ticker := provider.NormalizeTicker(r.PathValue("ticker"))

	m, err := h.provider.Metrics(r.Context(), ticker)
	if errors.Is(err, provider.ErrUnknownTicker) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load fixture: "+err.Error())
		return
	}

	ev := h.engine.Evaluate(m, h.weights)
	writeJSON(w, http.StatusOK, evaluateResponse{Ticker: ticker, Evaluation: ev, Missing: m.Missing()})
}
