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

// MealPlanService handles meal plan business logic. Every operation is
// scoped to the owning user; another user's plan is reported as not found.
type MealPlanService struct {
	plans   MealPlanStore
	metrics metrics.Recorder
}

// NewMealPlanService creates a new MealPlanService.
func NewMealPlanService(plans MealPlanStore, recorder metrics.Recorder) *MealPlanService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &MealPlanService{plans: plans, metrics: recorder}
}

// MealPlanInput defines input for creating or replacing a meal plan.
type MealPlanInput struct {
	Name     string
	Date     string // YYYY-MM-DD
	RecipeID string
}

// List returns the user's meal plans ordered by date.
func (s *MealPlanService) List(ctx context.Context, userID string) ([]*model.MealPlan, error) {
	return s.plans.ListMealPlans(ctx, userID)
}

// ListByDateRange returns the user's meal plans with dates in [startDate, endDate].
func (s *MealPlanService) ListByDateRange(ctx context.Context, userID, startDate, endDate string) ([]*model.MealPlan, error) {
	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)
	if startDate == "" || endDate == "" {
		return nil, invalid("Start date and end date are required")
	}

	start, err := model.ParseDate(startDate)
	if err != nil {
		return nil, invalid("startDate must be in YYYY-MM-DD format")
	}
	end, err := model.ParseDate(endDate)
	if err != nil {
		return nil, invalid("endDate must be in YYYY-MM-DD format")
	}
	if end.Before(start) {
		return nil, invalid("endDate must not be before startDate")
	}

	return s.plans.ListMealPlansByDateRange(ctx, userID, start, end)
}

// Get retrieves one of the user's meal plans.
func (s *MealPlanService) Get(ctx context.Context, id, userID string) (*model.MealPlan, error) {
	plan, err := s.plans.GetMealPlan(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrMealPlanNotFound) {
			return nil, ErrMealPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// Create validates and stores a meal plan owned by userID.
func (s *MealPlanService) Create(ctx context.Context, userID string, input MealPlanInput) (*model.MealPlan, error) {
	plan := &model.MealPlan{
		ID:        generateULID(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.apply(ctx, plan, input); err != nil {
		return nil, err
	}

	if err := s.plans.CreateMealPlan(ctx, plan); err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidRecipe):
			return nil, invalid("Recipe does not exist")
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.metrics.IncMealPlanCreated()

	return s.Get(ctx, plan.ID, userID)
}

// Update replaces one of the user's meal plans.
func (s *MealPlanService) Update(ctx context.Context, id, userID string, input MealPlanInput) (*model.MealPlan, error) {
	plan, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, plan, input); err != nil {
		return nil, err
	}

	if err := s.plans.UpdateMealPlan(ctx, plan); err != nil {
		switch {
		case errors.Is(err, repository.ErrMealPlanNotFound):
			return nil, ErrMealPlanNotFound
		case errors.Is(err, repository.ErrInvalidRecipe):
			return nil, invalid("Recipe does not exist")
		}
		return nil, err
	}

	return s.Get(ctx, id, userID)
}

// Delete removes one of the user's meal plans.
func (s *MealPlanService) Delete(ctx context.Context, id, userID string) error {
	if err := s.plans.DeleteMealPlan(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrMealPlanNotFound) {
			return ErrMealPlanNotFound
		}
		return err
	}

	s.metrics.IncMealPlanDeleted()

	return nil
}

// apply validates input and copies it onto plan.
func (s *MealPlanService) apply(ctx context.Context, plan *model.MealPlan, input MealPlanInput) error {
	name := strings.TrimSpace(input.Name)
	date := strings.TrimSpace(input.Date)
	recipeID := strings.TrimSpace(input.RecipeID)
	if name == "" || date == "" || recipeID == "" {
		return invalid("Name, date, and recipe_id are required")
	}
	if err := tooLong("name", name, model.MaxMealPlanNameLength); err != nil {
		return err
	}

	parsed, err := model.ParseDate(date)
	if err != nil {
		return invalid("date must be in YYYY-MM-DD format")
	}

	exists, err := s.plans.RecipeExists(ctx, recipeID)
	if err != nil {
		return fmt.Errorf("failed to check recipe: %w", err)
	}
	if !exists {
		return invalid("Recipe does not exist")
	}

	plan.Name = name
	plan.Date = parsed
	plan.RecipeID = &recipeID
	plan.RecipeTitle = nil

	return nil
}
