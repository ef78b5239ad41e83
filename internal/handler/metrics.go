package handler

import (
	"fmt"
	"net/http"

	"github.com/recipebook/recipebook/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "recipebook_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "recipebook_logins_total{status=\"success\"} %d\n", snap.LoginsSucceeded)
	writeMetric(w, "recipebook_logins_total{status=\"failed\"} %d\n", snap.LoginsFailed)
	writeMetric(w, "recipebook_auth_rejected_total %d\n", snap.AuthRejected)
	writeMetric(w, "recipebook_rate_limited_total %d\n", snap.RateLimited)

	writeMetric(w, "recipebook_recipes_created_total %d\n", snap.RecipesCreated)
	writeMetric(w, "recipebook_recipes_updated_total %d\n", snap.RecipesUpdated)
	writeMetric(w, "recipebook_recipes_deleted_total %d\n", snap.RecipesDeleted)
	writeMetric(w, "recipebook_recipes_rated_total %d\n", snap.RecipesRated)

	writeMetric(w, "recipebook_categories_created_total %d\n", snap.CategoriesCreated)
	writeMetric(w, "recipebook_categories_deleted_total %d\n", snap.CategoriesDeleted)

	writeMetric(w, "recipebook_meal_plans_created_total %d\n", snap.MealPlansCreated)
	writeMetric(w, "recipebook_meal_plans_deleted_total %d\n", snap.MealPlansDeleted)

	writeMetric(w, "recipebook_http_request_duration_seconds_count %d\n", snap.RequestDurationCount)
	writeMetric(w, "recipebook_http_request_duration_seconds_sum %.6f\n", float64(snap.RequestDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
