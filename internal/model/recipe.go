package model

import (
	"math"
	"time"
)

// Difficulty is the self-reported effort level of a recipe.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid checks if the difficulty is one of the known levels.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Rating bounds.
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// MaxTitleLength is the width of recipes.title in characters.
const MaxTitleLength = 255

// Recipe represents a recipe entity.
type Recipe struct {
	ID           string
	Title        string
	Ingredients  []string
	Instructions []string
	CategoryID   *string
	CookingTime  *int
	Difficulty   *Difficulty
	Calories     *int
	Protein      *float64
	Carbs        *float64
	Fat          *float64
	ImageURL     *string
	Rating       *float64
	UserID       *string // creator, informational only
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoundRating rounds a rating to two decimal places.
func RoundRating(r float64) float64 {
	return math.Round(r*100) / 100
}

// RecipeSort selects the ordering of recipe listings.
type RecipeSort string

const (
	RecipeSortDefault RecipeSort = ""
	RecipeSortRating  RecipeSort = "rating"
	RecipeSortCreated RecipeSort = "created"
)
