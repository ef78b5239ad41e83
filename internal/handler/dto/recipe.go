package dto

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/recipebook/recipebook/internal/model"
)

// RecipeRequest represents the request body for creating or replacing a recipe.
type RecipeRequest struct {
	Title        string          `json:"title"`
	Ingredients  IngredientList  `json:"ingredients"`
	Instructions InstructionList `json:"instructions"`
	CategoryID   *string         `json:"category_id,omitempty"`
	CookingTime  *int            `json:"cooking_time,omitempty"`
	Difficulty   *string         `json:"difficulty,omitempty"`
	Calories     *int            `json:"calories,omitempty"`
	Protein      *float64        `json:"protein,omitempty"`
	Carbs        *float64        `json:"carbs,omitempty"`
	Fat          *float64        `json:"fat,omitempty"`
	ImageURL     *string         `json:"image_url,omitempty"`
}

// RateRequest represents the request body for rating a recipe.
type RateRequest struct {
	Rating *Number `json:"rating"`
}

// RateResponse is returned after a rating is stored.
type RateResponse struct {
	ID     string  `json:"id"`
	Rating float64 `json:"rating"`
}

// Number is a float that also decodes from a numeric JSON string.
type Number float64

var errNotNumeric = errors.New("must be a number")

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Number(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errNotNumeric
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return errNotNumeric
	}
	*n = Number(f)
	return nil
}

// RecipeResponse represents a recipe in API responses.
type RecipeResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	CategoryID   *string   `json:"category_id"`
	CookingTime  *int      `json:"cooking_time"`
	Difficulty   *string   `json:"difficulty"`
	Calories     *int      `json:"calories"`
	Protein      *float64  `json:"protein"`
	Carbs        *float64  `json:"carbs"`
	Fat          *float64  `json:"fat"`
	ImageURL     *string   `json:"image_url"`
	Rating       *float64  `json:"rating"`
	UserID       *string   `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToRecipeResponse converts a Recipe model to RecipeResponse DTO.
func ToRecipeResponse(r *model.Recipe) *RecipeResponse {
	var difficulty *string
	if r.Difficulty != nil {
		d := string(*r.Difficulty)
		difficulty = &d
	}

	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	instructions := r.Instructions
	if instructions == nil {
		instructions = []string{}
	}

	return &RecipeResponse{
		ID:           r.ID,
		Title:        r.Title,
		Ingredients:  ingredients,
		Instructions: instructions,
		CategoryID:   r.CategoryID,
		CookingTime:  r.CookingTime,
		Difficulty:   difficulty,
		Calories:     r.Calories,
		Protein:      r.Protein,
		Carbs:        r.Carbs,
		Fat:          r.Fat,
		ImageURL:     r.ImageURL,
		Rating:       r.Rating,
		UserID:       r.UserID,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ToRecipeListResponse converts a slice of Recipe models.
func ToRecipeListResponse(recipes []*model.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, len(recipes))
	for i, r := range recipes {
		out[i] = *ToRecipeResponse(r)
	}
	return out
}
