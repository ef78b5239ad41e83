package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/recipebook/recipebook/internal/model"
)

// Common errors for recipe repository operations.
var (
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrInvalidCategory = errors.New("category does not exist")
)

const recipeColumns = `id, title, ingredients, instructions, category_id, cooking_time, difficulty,
	calories, protein, carbs, fat, image_url, rating, user_id, created_at, updated_at`

// RecipeFilter narrows a recipe listing.
type RecipeFilter struct {
	CategoryID string
	Sort       model.RecipeSort
	Limit      int // zero means unlimited
}

// CreateRecipe inserts a new recipe into the database.
func (r *Repository) CreateRecipe(ctx context.Context, recipe *model.Recipe) error {
	query := `
		INSERT INTO recipes (id, title, ingredients, instructions, category_id, cooking_time, difficulty,
			calories, protein, carbs, fat, image_url, rating, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.pool.Exec(ctx, query,
		recipe.ID,
		recipe.Title,
		pq.Array(recipe.Ingredients),
		pq.Array(recipe.Instructions),
		recipe.CategoryID,
		recipe.CookingTime,
		difficultyValue(recipe.Difficulty),
		recipe.Calories,
		recipe.Protein,
		recipe.Carbs,
		recipe.Fat,
		recipe.ImageURL,
		recipe.Rating,
		recipe.UserID,
		recipe.CreatedAt,
		recipe.UpdatedAt,
	)

	if err != nil {
		if fkErr := foreignKeyError(err); fkErr != nil {
			return fkErr
		}
		return fmt.Errorf("failed to create recipe: %w", err)
	}

	return nil
}

// GetRecipeByID retrieves a recipe by its ID.
func (r *Repository) GetRecipeByID(ctx context.Context, id string) (*model.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1`
	return scanRecipe(r.pool.QueryRow(ctx, query, id))
}

// RecipeExists reports whether a recipe with the given ID exists.
func (r *Repository) RecipeExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM recipes WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check recipe existence: %w", err)
	}
	return exists, nil
}

// ListRecipes returns recipes matching the filter.
func (r *Repository) ListRecipes(ctx context.Context, filter RecipeFilter) ([]*model.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes`
	args := []any{}
	argIndex := 1

	if filter.CategoryID != "" {
		query += fmt.Sprintf(" WHERE category_id = $%d", argIndex)
		args = append(args, filter.CategoryID)
		argIndex++
	}

	switch filter.Sort {
	case model.RecipeSortRating:
		query += " ORDER BY rating DESC NULLS LAST, created_at DESC, id DESC"
	default:
		query += " ORDER BY created_at DESC, id DESC"
	}

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	return r.queryRecipes(ctx, query, args...)
}

// SearchRecipes returns recipes whose title, ingredients, or instructions
// contain the term, case-insensitively.
func (r *Repository) SearchRecipes(ctx context.Context, term string) ([]*model.Recipe, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipes
		WHERE title ILIKE $1 ESCAPE '\'
		   OR array_to_string(ingredients, ' ') ILIKE $1 ESCAPE '\'
		   OR array_to_string(instructions, ' ') ILIKE $1 ESCAPE '\'
		ORDER BY created_at DESC, id DESC
	`

	return r.queryRecipes(ctx, query, likePattern(term))
}

// UpdateRecipe replaces a recipe's mutable fields.
func (r *Repository) UpdateRecipe(ctx context.Context, recipe *model.Recipe) error {
	query := `
		UPDATE recipes
		SET title = $2, ingredients = $3, instructions = $4, category_id = $5, cooking_time = $6,
			difficulty = $7, calories = $8, protein = $9, carbs = $10, fat = $11, image_url = $12,
			updated_at = $13
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		recipe.ID,
		recipe.Title,
		pq.Array(recipe.Ingredients),
		pq.Array(recipe.Instructions),
		recipe.CategoryID,
		recipe.CookingTime,
		difficultyValue(recipe.Difficulty),
		recipe.Calories,
		recipe.Protein,
		recipe.Carbs,
		recipe.Fat,
		recipe.ImageURL,
		recipe.UpdatedAt,
	)

	if err != nil {
		if fkErr := foreignKeyError(err); fkErr != nil {
			return fkErr
		}
		return fmt.Errorf("failed to update recipe: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

// RateRecipe stores a rating on a recipe.
func (r *Repository) RateRecipe(ctx context.Context, id string, rating float64) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE recipes SET rating = $2, updated_at = NOW() WHERE id = $1`,
		id, rating,
	)
	if err != nil {
		return fmt.Errorf("failed to rate recipe: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

// DeleteRecipe hard-deletes a recipe. Meal plans referencing it keep a null recipe.
func (r *Repository) DeleteRecipe(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

func (r *Repository) queryRecipes(ctx context.Context, query string, args ...any) ([]*model.Recipe, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]*model.Recipe, 0)
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	return recipes, nil
}

func scanRecipe(row pgx.Row) (*model.Recipe, error) {
	var recipe model.Recipe
	var ingredients, instructions []string
	var difficulty *string

	err := row.Scan(
		&recipe.ID,
		&recipe.Title,
		pq.Array(&ingredients),
		pq.Array(&instructions),
		&recipe.CategoryID,
		&recipe.CookingTime,
		&difficulty,
		&recipe.Calories,
		&recipe.Protein,
		&recipe.Carbs,
		&recipe.Fat,
		&recipe.ImageURL,
		&recipe.Rating,
		&recipe.UserID,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to scan recipe: %w", err)
	}

	if ingredients == nil {
		ingredients = []string{}
	}
	if instructions == nil {
		instructions = []string{}
	}
	recipe.Ingredients = ingredients
	recipe.Instructions = instructions

	if difficulty != nil {
		d := model.Difficulty(*difficulty)
		recipe.Difficulty = &d
	}

	return &recipe, nil
}

func difficultyValue(d *model.Difficulty) *string {
	if d == nil {
		return nil
	}
	s := string(*d)
	return &s
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps term for a substring ILIKE match with wildcards escaped.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
