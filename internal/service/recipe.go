package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/recipebook/recipebook/internal/metrics"
	"github.com/recipebook/recipebook/internal/model"
	"github.com/recipebook/recipebook/internal/repository"
)

// RecipeService handles recipe business logic.
type RecipeService struct {
	recipes    RecipeStore
	categories CategoryStore
	metrics    metrics.Recorder
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(recipes RecipeStore, categories CategoryStore, recorder metrics.Recorder) *RecipeService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &RecipeService{
		recipes:    recipes,
		categories: categories,
		metrics:    recorder,
	}
}

// RecipeInput defines input for creating or replacing a recipe.
type RecipeInput struct {
	Title        string
	Ingredients  []string
	Instructions []string
	CategoryID   *string
	CookingTime  *int
	Difficulty   *string
	Calories     *int
	Protein      *float64
	Carbs        *float64
	Fat          *float64
	ImageURL     *string
}

// ListRecipesInput defines input for listing recipes.
type ListRecipesInput struct {
	Sort  string
	Limit int
}

// List returns recipes, newest first unless sorted by rating.
func (s *RecipeService) List(ctx context.Context, input ListRecipesInput) ([]*model.Recipe, error) {
	sort := model.RecipeSort(input.Sort)
	switch sort {
	case model.RecipeSortDefault, model.RecipeSortRating, model.RecipeSortCreated:
	default:
		return nil, invalid("sort must be one of rating, created")
	}
	if input.Limit < 0 {
		return nil, invalid("limit must be a positive integer")
	}

	return s.recipes.ListRecipes(ctx, repository.RecipeFilter{Sort: sort, Limit: input.Limit})
}

// Search returns recipes whose title, ingredients, or instructions contain the query.
func (s *RecipeService) Search(ctx context.Context, query string) ([]*model.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("Search query is required")
	}
	return s.recipes.SearchRecipes(ctx, query)
}

// ListByCategory returns the recipes in a category.
func (s *RecipeService) ListByCategory(ctx context.Context, categoryID string) ([]*model.Recipe, error) {
	return s.recipes.ListRecipes(ctx, repository.RecipeFilter{CategoryID: categoryID})
}

// Get retrieves a recipe by ID.
func (s *RecipeService) Get(ctx context.Context, id string) (*model.Recipe, error) {
	recipe, err := s.recipes.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

// Create validates and stores a new recipe recorded as created by userID.
func (s *RecipeService) Create(ctx context.Context, input RecipeInput, userID string) (*model.Recipe, error) {
	now := time.Now().UTC()
	recipe := &model.Recipe{
		ID:        generateULID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if userID != "" {
		recipe.UserID = &userID
	}

	if err := s.apply(ctx, recipe, input); err != nil {
		return nil, err
	}

	if err := s.recipes.CreateRecipe(ctx, recipe); err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidCategory):
			return nil, invalid("Category does not exist")
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.metrics.IncRecipeCreated()

	return recipe, nil
}

// Update replaces a recipe's editable fields. Rating and creator are kept.
func (s *RecipeService) Update(ctx context.Context, id string, input RecipeInput) (*model.Recipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, recipe, input); err != nil {
		return nil, err
	}
	recipe.UpdatedAt = time.Now().UTC()

	if err := s.recipes.UpdateRecipe(ctx, recipe); err != nil {
		switch {
		case errors.Is(err, repository.ErrRecipeNotFound):
			return nil, ErrRecipeNotFound
		case errors.Is(err, repository.ErrInvalidCategory):
			return nil, invalid("Category does not exist")
		}
		return nil, err
	}

	s.metrics.IncRecipeUpdated()

	return recipe, nil
}

// Rate stores a rating in [0,5], rounded to two decimals.
func (s *RecipeService) Rate(ctx context.Context, id string, rating float64) (float64, error) {
	if !(rating >= model.MinRating && rating <= model.MaxRating) {
		return 0, invalid("Rating must be between 0 and 5")
	}
	rating = model.RoundRating(rating)

	if err := s.recipes.RateRecipe(ctx, id, rating); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return 0, ErrRecipeNotFound
		}
		return 0, err
	}

	s.metrics.IncRecipeRated()

	return rating, nil
}

// Delete removes a recipe.
func (s *RecipeService) Delete(ctx context.Context, id string) error {
	if err := s.recipes.DeleteRecipe(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	s.metrics.IncRecipeDeleted()

	return nil
}

// apply validates input and copies it onto recipe.
func (s *RecipeService) apply(ctx context.Context, recipe *model.Recipe, input RecipeInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" || len(input.Ingredients) == 0 || len(input.Instructions) == 0 {
		return invalid("Missing required fields")
	}
	if err := tooLong("title", title, model.MaxTitleLength); err != nil {
		return err
	}

	var difficulty *model.Difficulty
	if input.Difficulty != nil && *input.Difficulty != "" {
		d := model.Difficulty(strings.ToLower(strings.TrimSpace(*input.Difficulty)))
		if !d.IsValid() {
			return invalid("difficulty must be one of easy, medium, hard")
		}
		difficulty = &d
	}

	if err := nonNegativeInt("cooking_time", input.CookingTime); err != nil {
		return err
	}
	if err := nonNegativeInt("calories", input.Calories); err != nil {
		return err
	}
	nutrients := []struct {
		name  string
		value *float64
	}{
		{"protein", input.Protein},
		{"carbs", input.Carbs},
		{"fat", input.Fat},
	}
	for _, n := range nutrients {
		if n.value != nil && *n.value < 0 {
			return invalid(n.name + " must not be negative")
		}
	}

	categoryID := blankToNil(input.CategoryID)
	if categoryID != nil {
		exists, err := s.categories.CategoryExists(ctx, *categoryID)
		if err != nil {
			return fmt.Errorf("failed to check category: %w", err)
		}
		if !exists {
			return invalid("Category does not exist")
		}
	}

	recipe.Title = title
	recipe.Ingredients = input.Ingredients
	recipe.Instructions = input.Instructions
	recipe.CategoryID = categoryID
	recipe.CookingTime = input.CookingTime
	recipe.Difficulty = difficulty
	recipe.Calories = input.Calories
	recipe.Protein = input.Protein
	recipe.Carbs = input.Carbs
	recipe.Fat = input.Fat
	recipe.ImageURL = blankToNil(input.ImageURL)

	return nil
}

func nonNegativeInt(name string, v *int) error {
	if v != nil && *v < 0 {
		return invalid(name + " must not be negative")
	}
	return nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
