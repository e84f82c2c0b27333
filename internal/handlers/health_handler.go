package handlers

import (
	"net/http"

	"chapterfund-backend/internal/cache"
	"chapterfund-backend/internal/health"
	"chapterfund-backend/pkg/utils"
)

type HealthHandler struct {
	checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// BasicHealth - for liveness probes
func (h *HealthHandler) BasicHealth(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ReadinessHealth - for readiness probes; unhealthy DB means 503
func (h *HealthHandler) ReadinessHealth(w http.ResponseWriter, r *http.Request) {
	status := h.checker.CheckBasic()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}

// DetailedHealth adds the cache state. Redis being down never makes the
// service unhealthy; it only disables caching.
func (h *HealthHandler) DetailedHealth(w http.ResponseWriter, r *http.Request) {
	status := h.checker.CheckBasic()

	cacheStatus := "unavailable"
	if cache.IsHealthy() {
		cacheStatus = "healthy"
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"status":   status.Status,
		"database": status.Database,
		"cache":    map[string]string{"status": cacheStatus},
	})
}
