package rest

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker reports whether a dependency is reachable. *pgxpool.Pool satisfies it.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthStatus is the body of the health endpoints
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks,omitempty"`
}

type HealthHandler struct {
	*BaseHandler
	version  string
	database HealthChecker // nil when the journal is in memory
}

func NewHealthHandler(base *BaseHandler, version string, database HealthChecker) *HealthHandler {
	return &HealthHandler{
		BaseHandler: base,
		version:     version,
		database:    database,
	}
}

// GetLiveness is a lightweight check with no external dependencies
func (h *HealthHandler) GetLiveness(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONResponse(w, r, HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}, http.StatusOK)
}

// GetReadiness checks the journal database when one is configured
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	response := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
		Checks:    map[string]string{},
	}
	httpStatus := http.StatusOK

	if h.database == nil {
		response.Checks["database"] = "not_configured"
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.database.Ping(ctx); err != nil {
			h.logger.Warn(r.Context(), "readiness check failed", "check", "database", "error", err)
			response.Status = "unhealthy"
			response.Checks["database"] = "down"
			httpStatus = http.StatusServiceUnavailable
		} else {
			response.Checks["database"] = "up"
		}
	}

	h.WriteJSONResponse(w, r, response, httpStatus)
}
