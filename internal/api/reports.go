package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/stockfit/stockfit/internal/reports"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func (h *Handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if h.reports == nil {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}
	id := r.PathValue("reportID")

	if report := h.cache.Get(id); report != nil {
		writeJSON(w, http.StatusOK, report)
		return
	}

	report, err := h.reports.Get(r.Context(), id)
	if errors.Is(err, reports.ErrNotFound) {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("report_id", id).Msg("load report")
		writeError(w, http.StatusInternalServerError, "failed to load report")
		return
	}

	h.cache.Put(id, report)
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) handleListReports(w http.ResponseWriter, r *http.Request) {
	if h.reports == nil {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}

	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxListLimit)
	}

	list, err := h.reports.List(r.Context(), r.URL.Query().Get("ticker"), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("list reports")
		writeError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}
	if list == nil {
		list = []reports.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}
