package dto

import (
	"time"

	"github.com/recipebook/recipebook/internal/model"
)

// MealPlanRequest represents the request body for creating or replacing a meal plan.
type MealPlanRequest struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	RecipeID string `json:"recipe_id"`
}

// MealPlanResponse represents a meal plan in API responses.
type MealPlanResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	RecipeID    *string   `json:"recipe_id"`
	RecipeTitle *string   `json:"recipe_title"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToMealPlanResponse converts a MealPlan model to MealPlanResponse DTO.
func ToMealPlanResponse(m *model.MealPlan) *MealPlanResponse {
	return &MealPlanResponse{
		ID:          m.ID,
		Name:        m.DisplayName(),
		Date:        m.Date.Format(model.DateLayout),
		RecipeID:    m.RecipeID,
		RecipeTitle: m.RecipeTitle,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
	}
}

// ToMealPlanListResponse converts a slice of MealPlan models.
func ToMealPlanListResponse(plans []*model.MealPlan) []MealPlanResponse {
	out := make([]MealPlanResponse, len(plans))
	for i, m := range plans {
		out[i] = *ToMealPlanResponse(m)
	}
	return out
}
