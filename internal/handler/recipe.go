package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/recipebook/recipebook/internal/auth"
	"github.com/recipebook/recipebook/internal/handler/dto"
	"github.com/recipebook/recipebook/internal/service"
)

// RecipeHandler handles HTTP requests for recipe operations.
type RecipeHandler struct {
	svc    *service.RecipeService
	logger *slog.Logger
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(svc *service.RecipeService, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/recipes.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	input := service.ListRecipesInput{Sort: query.Get("sort")}
	if l := query.Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be a positive integer")
			return
		}
		input.Limit = limit
	}

	recipes, err := h.svc.List(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRecipeListResponse(recipes))
}

// Search handles GET /api/recipes/search?query=.
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.svc.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRecipeListResponse(recipes))
}

// ListByCategory handles GET /api/recipes/category/{id}.
func (h *RecipeHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.svc.ListByCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRecipeListResponse(recipes))
}

// Get handles GET /api/recipes/{id}.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRecipeResponse(recipe))
}

// Create handles POST /api/recipes.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RecipeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID := auth.UserIDFromContext(r.Context())

	recipe, err := h.svc.Create(r.Context(), toRecipeInput(req), userID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("recipe_created",
		"recipe_id", recipe.ID,
		"user_id", userID,
	)

	writeJSON(w, http.StatusCreated, dto.ToRecipeResponse(recipe))
}

// Update handles PUT /api/recipes/{id}.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.RecipeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	recipe, err := h.svc.Update(r.Context(), id, toRecipeInput(req))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("recipe_updated",
		"recipe_id", recipe.ID,
		"user_id", auth.UserIDFromContext(r.Context()),
	)

	writeJSON(w, http.StatusOK, dto.ToRecipeResponse(recipe))
}

// Rate handles POST /api/recipes/{id}/rate.
func (h *RecipeHandler) Rate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.RateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Rating == nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 0 and 5")
		return
	}

	rating, err := h.svc.Rate(r.Context(), id, float64(*req.Rating))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("recipe_rated",
		"recipe_id", id,
		"rating", rating,
	)

	writeJSON(w, http.StatusOK, dto.RateResponse{ID: id, Rating: rating})
}

// Delete handles DELETE /api/recipes/{id}.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("recipe_deleted",
		"recipe_id", id,
		"user_id", auth.UserIDFromContext(r.Context()),
	)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses.
func (h *RecipeHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		writeError(w, http.StatusNotFound, "RECIPE_NOT_FOUND", "Recipe not found")
	default:
		writeServiceError(w, r, h.logger, err)
	}
}

func toRecipeInput(req dto.RecipeRequest) service.RecipeInput {
	return service.RecipeInput{
		Title:        req.Title,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		CategoryID:   req.CategoryID,
		CookingTime:  req.CookingTime,
		Difficulty:   req.Difficulty,
		Calories:     req.Calories,
		Protein:      req.Protein,
		Carbs:        req.Carbs,
		Fat:          req.Fat,
		ImageURL:     req.ImageURL,
	}
}
