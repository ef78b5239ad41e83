package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/recipebook/recipebook/internal/metrics"
)

func TestMetricsHandler(t *testing.T) {
	recorder := metrics.NewInMemory()
	recorder.IncRecipeCreated()
	recorder.IncRecipeCreated()
	recorder.IncLogin(false)
	recorder.ObserveRequestDuration(1500 * time.Millisecond)

	rec := httptest.NewRecorder()
	NewMetricsHandler(recorder).Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("unexpected Content-Type %s", ct)
	}

	body := rec.Body.String()
	for _, line := range []string{
		"recipebook_recipes_created_total 2",
		`recipebook_logins_total{status="failed"} 1`,
		"recipebook_http_request_duration_seconds_count 1",
		"recipebook_http_request_duration_seconds_sum 1.500000",
	} {
		if !strings.Contains(body, line) {
			t.Errorf("metrics output missing %q", line)
		}
	}
}

func TestMetricsHandler_NotConfigured(t *testing.T) {
	rec := httptest.NewRecorder()
	NewMetricsHandler(nil).Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}
}
