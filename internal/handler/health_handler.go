package handler

import (
	"net/http"

	"doc-ingest/internal/domain"
)

// HealthHandler serves the liveness endpoint
type HealthHandler struct {
	healthService domain.HealthService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(healthService domain.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.healthService.Check(r.Context()))
}
