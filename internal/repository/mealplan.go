package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/recipebook/recipebook/internal/model"
)

// Common errors for meal plan repository operations.
var (
	ErrMealPlanNotFound = errors.New("meal plan not found")
	ErrInvalidRecipe    = errors.New("recipe does not exist")
)

// Every read joins the recipe title and filters by owner.
const mealPlanSelect = `
	SELECT mp.id, mp.name, mp.date, mp.recipe_id, r.title, mp.user_id, mp.created_at
	FROM meal_plans mp
	LEFT JOIN recipes r ON r.id = mp.recipe_id
`

// CreateMealPlan inserts a new meal plan into the database.
func (r *Repository) CreateMealPlan(ctx context.Context, plan *model.MealPlan) error {
	query := `
		INSERT INTO meal_plans (id, name, date, recipe_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		plan.ID,
		plan.Name,
		plan.Date,
		plan.RecipeID,
		plan.UserID,
		plan.CreatedAt,
	)
	if err != nil {
		if fkErr := foreignKeyError(err); fkErr != nil {
			return fkErr
		}
		return fmt.Errorf("failed to create meal plan: %w", err)
	}

	return nil
}

// GetMealPlan retrieves a meal plan owned by userID.
func (r *Repository) GetMealPlan(ctx context.Context, id, userID string) (*model.MealPlan, error) {
	query := mealPlanSelect + ` WHERE mp.id = $1 AND mp.user_id = $2`
	return scanMealPlan(r.pool.QueryRow(ctx, query, id, userID))
}

// ListMealPlans returns every meal plan owned by userID ordered by date.
func (r *Repository) ListMealPlans(ctx context.Context, userID string) ([]*model.MealPlan, error) {
	query := mealPlanSelect + ` WHERE mp.user_id = $1 ORDER BY mp.date, mp.created_at`
	return r.queryMealPlans(ctx, query, userID)
}

// ListMealPlansByDateRange returns meal plans owned by userID with dates in [start, end].
func (r *Repository) ListMealPlansByDateRange(ctx context.Context, userID string, start, end time.Time) ([]*model.MealPlan, error) {
	query := mealPlanSelect + `
		WHERE mp.user_id = $1 AND mp.date BETWEEN $2 AND $3
		ORDER BY mp.date, mp.created_at
	`
	return r.queryMealPlans(ctx, query, userID, start, end)
}

// UpdateMealPlan updates a meal plan owned by plan.UserID.
func (r *Repository) UpdateMealPlan(ctx context.Context, plan *model.MealPlan) error {
	query := `
		UPDATE meal_plans
		SET name = $3, date = $4, recipe_id = $5
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		plan.ID,
		plan.UserID,
		plan.Name,
		plan.Date,
		plan.RecipeID,
	)
	if err != nil {
		if fkErr := foreignKeyError(err); fkErr != nil {
			return fkErr
		}
		return fmt.Errorf("failed to update meal plan: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrMealPlanNotFound
	}

	return nil
}

// DeleteMealPlan removes a meal plan owned by userID.
func (r *Repository) DeleteMealPlan(ctx context.Context, id, userID string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM meal_plans WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete meal plan: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrMealPlanNotFound
	}

	return nil
}

func (r *Repository) queryMealPlans(ctx context.Context, query string, args ...any) ([]*model.MealPlan, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query meal plans: %w", err)
	}
	defer rows.Close()

	plans := make([]*model.MealPlan, 0)
	for rows.Next() {
		plan, err := scanMealPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meal plans: %w", err)
	}

	return plans, nil
}

func scanMealPlan(row pgx.Row) (*model.MealPlan, error) {
	var plan model.MealPlan
	err := row.Scan(
		&plan.ID,
		&plan.Name,
		&plan.Date,
		&plan.RecipeID,
		&plan.RecipeTitle,
		&plan.UserID,
		&plan.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMealPlanNotFound
		}
		return nil, fmt.Errorf("failed to scan meal plan: %w", err)
	}

	return &plan, nil
}
