package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/recipebook/recipebook/internal/auth"
	"github.com/recipebook/recipebook/internal/handler/dto"
	"github.com/recipebook/recipebook/internal/service"
)

// MealPlanHandler handles HTTP requests for the caller's meal plans.
// Every operation is scoped to the authenticated user.
type MealPlanHandler struct {
	svc    *service.MealPlanService
	logger *slog.Logger
}

// NewMealPlanHandler creates a new MealPlanHandler.
func NewMealPlanHandler(svc *service.MealPlanService, logger *slog.Logger) *MealPlanHandler {
	return &MealPlanHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/meal-plans.
func (h *MealPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.svc.List(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMealPlanListResponse(plans))
}

// DateRange handles GET /api/meal-plans/date-range?startDate=&endDate=.
func (h *MealPlanHandler) DateRange(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	plans, err := h.svc.ListByDateRange(r.Context(),
		auth.UserIDFromContext(r.Context()),
		query.Get("startDate"),
		query.Get("endDate"),
	)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMealPlanListResponse(plans))
}

// Get handles GET /api/meal-plans/{id}.
func (h *MealPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	plan, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMealPlanResponse(plan))
}

// Create handles POST /api/meal-plans.
func (h *MealPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.MealPlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID := auth.UserIDFromContext(r.Context())

	plan, err := h.svc.Create(r.Context(), userID, toMealPlanInput(req))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("meal_plan_created",
		"meal_plan_id", plan.ID,
		"user_id", userID,
	)

	writeJSON(w, http.StatusCreated, dto.ToMealPlanResponse(plan))
}

// Update handles PUT /api/meal-plans/{id}.
func (h *MealPlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.MealPlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID := auth.UserIDFromContext(r.Context())

	plan, err := h.svc.Update(r.Context(), id, userID, toMealPlanInput(req))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("meal_plan_updated",
		"meal_plan_id", plan.ID,
		"user_id", userID,
	)

	writeJSON(w, http.StatusOK, dto.ToMealPlanResponse(plan))
}

// Delete handles DELETE /api/meal-plans/{id}.
func (h *MealPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID := auth.UserIDFromContext(r.Context())

	if err := h.svc.Delete(r.Context(), id, userID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("meal_plan_deleted",
		"meal_plan_id", id,
		"user_id", userID,
	)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Meal plan deleted successfully"})
}

// handleServiceError maps service errors to HTTP responses.
func (h *MealPlanHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrMealPlanNotFound):
		writeError(w, http.StatusNotFound, "MEAL_PLAN_NOT_FOUND", "Meal plan not found")
	default:
		writeServiceError(w, r, h.logger, err)
	}
}

func toMealPlanInput(req dto.MealPlanRequest) service.MealPlanInput {
	return service.MealPlanInput{
		Name:     req.Name,
		Date:     req.Date,
		RecipeID: req.RecipeID,
	}
}
