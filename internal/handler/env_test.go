package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/recipebook/recipebook/internal/auth"
	"github.com/recipebook/recipebook/internal/handler/dto"
	"github.com/recipebook/recipebook/internal/metrics"
	"github.com/recipebook/recipebook/internal/model"
	"github.com/recipebook/recipebook/internal/service"
	"github.com/recipebook/recipebook/internal/testutil"
)

// testUserHeader carries the caller's user id in place of a bearer token.
const testUserHeader = "X-Test-User"

type stubIssuer struct{}

func (stubIssuer) Issue(user *model.User) (string, error) {
	return "token-for-" + user.ID, nil
}

// testEnv wires every handler to services backed by an in-memory store.
type testEnv struct {
	store   *testutil.MemStore
	metrics *metrics.InMemoryRecorder
	router  http.Handler
}

func newTestEnv(t *testing.T, adminUsernames ...string) *testEnv {
	t.Helper()

	store := testutil.NewMemStore()
	recorder := metrics.NewInMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authHandler := NewAuthHandler(service.NewAuthService(store, stubIssuer{}, adminUsernames, recorder), logger)
	recipeHandler := NewRecipeHandler(service.NewRecipeService(store, store, recorder), logger)
	categoryHandler := NewCategoryHandler(service.NewCategoryService(store, recorder), logger)
	mealPlanHandler := NewMealPlanHandler(service.NewMealPlanService(store, recorder), logger)

	requireUser := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get(testUserHeader)
			if userID == "" {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Access denied. No token provided.")
				return
			}
			ctx := auth.ContextWithIdentity(r.Context(), &model.Identity{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	r := chi.NewRouter()
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.With(requireUser).Get("/me", authHandler.Me)
		r.With(requireUser).Get("/users", authHandler.ListUsers)
		r.With(requireUser).Delete("/users/{id}", authHandler.DeleteUser)
	})
	r.Route("/api/recipes", func(r chi.Router) {
		r.Get("/", recipeHandler.List)
		r.Get("/search", recipeHandler.Search)
		r.Get("/category/{id}", recipeHandler.ListByCategory)
		r.Get("/{id}", recipeHandler.Get)
		r.With(requireUser).Post("/", recipeHandler.Create)
		r.With(requireUser).Put("/{id}", recipeHandler.Update)
		r.With(requireUser).Delete("/{id}", recipeHandler.Delete)
		r.With(requireUser).Post("/{id}/rate", recipeHandler.Rate)
	})
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", categoryHandler.List)
		r.Get("/{id}", categoryHandler.Get)
		r.With(requireUser).Post("/", categoryHandler.Create)
		r.With(requireUser).Put("/{id}", categoryHandler.Update)
		r.With(requireUser).Delete("/{id}", categoryHandler.Delete)
	})
	r.Route("/api/meal-plans", func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/", mealPlanHandler.List)
		r.Get("/date-range", mealPlanHandler.DateRange)
		r.Get("/{id}", mealPlanHandler.Get)
		r.Post("/", mealPlanHandler.Create)
		r.Put("/{id}", mealPlanHandler.Update)
		r.Delete("/{id}", mealPlanHandler.Delete)
	})

	return &testEnv{store: store, metrics: recorder, router: r}
}

// do sends a request as userID; an empty userID sends it anonymously.
func (e *testEnv) do(t *testing.T, method, path, body, userID string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(testUserHeader, userID)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()

	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	body := decodeBody[dto.ErrorResponse](t, rec)
	if message != "" && body.Error != message {
		t.Errorf("error = %q, want %q", body.Error, message)
	}
}

// mustCreate posts body and returns the decoded 201 response.
func mustCreate[T any](t *testing.T, e *testEnv, path, body, userID string) T {
	t.Helper()

	rec := e.do(t, http.MethodPost, path, body, userID)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST %s status = %d, want 201 (body %s)", path, rec.Code, rec.Body.String())
	}
	return decodeBody[T](t, rec)
}
