package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/recipebook/recipebook/internal/config"
	"github.com/recipebook/recipebook/internal/handler"
	"github.com/recipebook/recipebook/internal/metrics"
	"github.com/recipebook/recipebook/internal/middleware"
)

// routerDeps collects everything setupRouter wires together.
type routerDeps struct {
	cfg     *config.Config
	logger  *slog.Logger
	tokens  middleware.TokenVerifier
	limiter middleware.RateLimiter
	metrics metrics.Recorder

	root       *handler.Handler
	health     *handler.HealthHandler
	metricsH   *handler.MetricsHandler
	auth       *handler.AuthHandler
	recipes    *handler.RecipeHandler
	categories *handler.CategoryHandler
	mealPlans  *handler.MealPlanHandler
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.NotFound(d.root.NotFound)
	r.MethodNotAllowed(d.root.MethodNotAllowed)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = d.cfg.GetCORSAllowedOrigins()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))
	r.Use(middleware.Instrument(d.metrics))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: d.cfg.IsDevelopment()}))
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.MaxBodySize(d.cfg.MaxRequestBodySize))

	// Operational endpoints (no auth required)
	r.Get("/healthz", d.health.Healthz)
	r.Get("/readyz", d.health.Readyz)
	r.Get("/metrics", d.metricsH.Metrics)
	r.Get("/", d.root.Info)

	requireAuth := middleware.Auth(middleware.AuthConfig{
		Logger:  d.logger,
		Tokens:  d.tokens,
		Metrics: d.metrics,
	})

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:      d.logger,
		Limiter:     d.limiter,
		Metrics:     d.metrics,
		IPEnabled:   d.cfg.RateLimitAuthEnabled,
		IPScope:     "auth",
		IPRPS:       d.cfg.RateLimitAuthRPS,
		IPBurst:     d.cfg.RateLimitAuthBurst,
		UserEnabled: d.cfg.RateLimitAPIEnabled,
		UserRPM:     d.cfg.RateLimitAPIRPM,
		UserBurst:   d.cfg.RateLimitAPIBurst,
	}
	limitIP := middleware.RateLimitIP(rateLimitCfg)
	limitUser := middleware.RateLimitUser(rateLimitCfg)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(limitIP).Post("/register", d.auth.Register)
			r.With(limitIP).Post("/login", d.auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth, limitUser)
				r.Get("/me", d.auth.Me)
				r.Get("/users", d.auth.ListUsers)
				r.Delete("/users/{id}", d.auth.DeleteUser)
			})
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", d.recipes.List)
			r.Get("/search", d.recipes.Search)
			r.Get("/category/{id}", d.recipes.ListByCategory)
			r.Get("/{id}", d.recipes.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth, limitUser)
				r.Post("/", d.recipes.Create)
				r.Put("/{id}", d.recipes.Update)
				r.Delete("/{id}", d.recipes.Delete)
				r.Post("/{id}/rate", d.recipes.Rate)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", d.categories.List)
			r.Get("/{id}", d.categories.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth, limitUser)
				r.Post("/", d.categories.Create)
				r.Put("/{id}", d.categories.Update)
				r.Delete("/{id}", d.categories.Delete)
			})
		})

		r.Route("/meal-plans", func(r chi.Router) {
			r.Use(requireAuth, limitUser)
			r.Get("/", d.mealPlans.List)
			r.Get("/date-range", d.mealPlans.DateRange)
			r.Get("/{id}", d.mealPlans.Get)
			r.Post("/", d.mealPlans.Create)
			r.Put("/{id}", d.mealPlans.Update)
			r.Delete("/{id}", d.mealPlans.Delete)
		})
	})

	return r
}
