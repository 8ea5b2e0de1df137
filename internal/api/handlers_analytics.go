package api

import (
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/daylog/daylog/server/internal/api/respond"
	"github.com/daylog/daylog/server/internal/api/validate"
	"github.com/daylog/daylog/server/internal/services"
)

const defaultAnalyticsDays = 30

// AnalyticsHandler serves the derived, read-only views.
type AnalyticsHandler struct {
	svc *services.AnalyticsService
}

func NewAnalyticsHandler(svc *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// GetDailySummary GET /api/users/{userId}/summary/{date}
func (h *AnalyticsHandler) GetDailySummary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	out, err := h.svc.DailySummary(r.Context(), vars["userId"], vars["date"])
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// GetBreakdown GET /api/users/{userId}/analytics/breakdown?days=30
func (h *AnalyticsHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	days, err := validate.Days(r.URL.Query().Get("days"), defaultAnalyticsDays)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	out, err := h.svc.Breakdown(r.Context(), vars["userId"], days)
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// GetStreaks GET /api/users/{userId}/analytics/streaks
func (h *AnalyticsHandler) GetStreaks(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	out, err := h.svc.Streaks(r.Context(), vars["userId"])
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// GetAnalyticsSummary GET /api/users/{userId}/analytics/summary?days=30
func (h *AnalyticsHandler) GetAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	days, err := validate.Days(r.URL.Query().Get("days"), defaultAnalyticsDays)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	out, err := h.svc.Summary(r.Context(), vars["userId"], days)
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// GetInsights GET /api/users/{userId}/insights?days=30
func (h *AnalyticsHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	days, err := validate.Days(r.URL.Query().Get("days"), defaultAnalyticsDays)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	out, err := h.svc.Insights(r.Context(), vars["userId"], days)
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
