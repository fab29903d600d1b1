package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/finchat/finchat/internal/models"
	"github.com/finchat/finchat/internal/store"
)

const version = "1.0.0"

// HealthHandler handles GET /health with a database connectivity check.
type HealthHandler struct {
	repo *store.Repository
}

func NewHealthHandler(repo *store.Repository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"server": "ok"}
	overallStatus := "healthy"

	// Short timeout so a stuck pool does not block the probe
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.HealthCheck(ctx); err != nil {
		checks["database"] = "unavailable: " + err.Error()
		overallStatus = "degraded"
	} else {
		checks["database"] = "ok"
	}

	statusCode := http.StatusOK
	if overallStatus == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	models.WriteJSON(w, statusCode, models.HealthResponse{
		Status:  overallStatus,
		Version: version,
		Checks:  checks,
	})
}
