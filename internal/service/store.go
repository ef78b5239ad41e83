package service

import (
	"context"
	"time"

	"github.com/recipebook/recipebook/internal/model"
	"github.com/recipebook/recipebook/internal/repository"
)

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	SetUserAdmin(ctx context.Context, id string, isAdmin bool) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	DeleteUser(ctx context.Context, id string) error
}

// RecipeStore persists recipes.
type RecipeStore interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe) error
	GetRecipeByID(ctx context.Context, id string) (*model.Recipe, error)
	ListRecipes(ctx context.Context, filter repository.RecipeFilter) ([]*model.Recipe, error)
	SearchRecipes(ctx context.Context, term string) ([]*model.Recipe, error)
	UpdateRecipe(ctx context.Context, recipe *model.Recipe) error
	RateRecipe(ctx context.Context, id string, rating float64) error
	DeleteRecipe(ctx context.Context, id string) error
}

// CategoryStore persists categories.
type CategoryStore interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	CategoryExists(ctx context.Context, id string) (bool, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

// MealPlanStore persists meal plans. Every method is scoped to an owner.
type MealPlanStore interface {
	CreateMealPlan(ctx context.Context, plan *model.MealPlan) error
	GetMealPlan(ctx context.Context, id, userID string) (*model.MealPlan, error)
	ListMealPlans(ctx context.Context, userID string) ([]*model.MealPlan, error)
	ListMealPlansByDateRange(ctx context.Context, userID string, start, end time.Time) ([]*model.MealPlan, error)
	UpdateMealPlan(ctx context.Context, plan *model.MealPlan) error
	DeleteMealPlan(ctx context.Context, id, userID string) error
	RecipeExists(ctx context.Context, id string) (bool, error)
}

var (
	_ UserStore     = (*repository.Repository)(nil)
	_ RecipeStore   = (*repository.Repository)(nil)
	_ CategoryStore = (*repository.Repository)(nil)
	_ MealPlanStore = (*repository.Repository)(nil)
)
