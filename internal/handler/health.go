package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// SchemaVersioner reports the applied migration version.
type SchemaVersioner interface {
	MigrationVersion(ctx context.Context) (int64, error)
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	db     HealthChecker
	cache  HealthChecker
	schema SchemaVersioner
}

// NewHealthHandler creates a new HealthHandler.
// Pass nil for any dependency that is not configured.
func NewHealthHandler(db, cache HealthChecker, schema SchemaVersioner) *HealthHandler {
	return &HealthHandler{
		db:     db,
		cache:  cache,
		schema: schema,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz is a liveness probe endpoint.
// It returns 200 if the server is running and checks no dependencies.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz is a readiness probe endpoint.
// It returns 200 only if PostgreSQL and Redis respond. The schema version
// is reported for information and never fails the probe.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	healthy := true

	if !runCheck(ctx, checks, "postgres", h.db) {
		healthy = false
	}
	if !runCheck(ctx, checks, "redis", h.cache) {
		healthy = false
	}

	if h.schema != nil && healthy {
		if v, err := h.schema.MigrationVersion(ctx); err != nil {
			checks["schema"] = "unknown"
		} else {
			checks["schema"] = "version " + strconv.FormatInt(v, 10)
		}
	}

	status := "ok"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, HealthResponse{
		Status: status,
		Checks: checks,
	})
}

// runCheck records the result of pinging a dependency and reports whether it is usable.
func runCheck(ctx context.Context, checks map[string]string, name string, c HealthChecker) bool {
	if c == nil {
		checks[name] = "not configured"
		return true
	}
	if err := c.Ping(ctx); err != nil {
		checks[name] = "error: " + err.Error()
		return false
	}
	checks[name] = "ok"
	return true
}
