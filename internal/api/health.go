package api

import (
	"net/http"
	"time"

	respond "github.com/daylog/daylog/server/internal/api/respond"
)

// HealthHandler handles the health check endpoint.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// serviceIsHealthy is injected by run.go; defaults to unhealthy so the
// endpoint never reports ready before the checkers start.
var serviceIsHealthy = func() bool { return false }

// BindServiceHealth wires the aggregated checker into the endpoint.
func BindServiceHealth(f func() bool) { serviceIsHealthy = f }

// CheckHealth handles GET /api/health.
// Always returns 200; the body reports healthy/unhealthy.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "unhealthy"
	if serviceIsHealthy() {
		status = "healthy"
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
