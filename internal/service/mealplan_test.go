package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebook/recipebook/internal/model"
)

type mealPlanFixture struct {
	ctx     context.Context
	store   *memStore
	svc     *MealPlanService
	recipe  *model.Recipe
	recipe2 *model.Recipe
}

func newMealPlanFixture(t *testing.T) *mealPlanFixture {
	t.Helper()
	ctx := context.Background()
	store := newMemStore()
	recipes := NewRecipeService(store, store, nil)

	r1, err := recipes.Create(ctx, validRecipeInput(), "")
	require.NoError(t, err)
	in := validRecipeInput()
	in.Title = "Lasagna"
	r2, err := recipes.Create(ctx, in, "")
	require.NoError(t, err)

	return &mealPlanFixture{
		ctx:     ctx,
		store:   store,
		svc:     NewMealPlanService(store, nil),
		recipe:  r1,
		recipe2: r2,
	}
}

func TestMealPlanService_CreateAndGet(t *testing.T) {
	t.Parallel()
	f := newMealPlanFixture(t)

	plan, err := f.svc.Create(f.ctx, "alice", MealPlanInput{Name: "Sunday brunch", Date: "2024-06-02", RecipeID: f.recipe.ID})
	require.NoError(t, err)

	assert.Equal(t, "alice", plan.UserID)
	assert.Equal(t, "2024-06-02", plan.Date.Format(model.DateLayout))
	require.NotNil(t, plan.RecipeTitle)
	assert.Equal(t, "Pancakes", *plan.RecipeTitle)

	got, err := f.svc.Get(f.ctx, plan.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, plan.ID, got.ID)
}

func TestMealPlanService_Validation(t *testing.T) {
	t.Parallel()
	f := newMealPlanFixture(t)
	before := f.store.Writes()

	tests := []struct {
		name    string
		input   MealPlanInput
		wantMsg string
	}{
		{"missing name", MealPlanInput{Date: "2024-06-02", RecipeID: f.recipe.ID}, "Name, date, and recipe_id are required"},
		{"missing date", MealPlanInput{Name: "x", RecipeID: f.recipe.ID}, "Name, date, and recipe_id are required"},
		{"missing recipe", MealPlanInput{Name: "x", Date: "2024-06-02"}, "Name, date, and recipe_id are required"},
		{"bad date", MealPlanInput{Name: "x", Date: "06/02/2024", RecipeID: f.recipe.ID}, "date must be in YYYY-MM-DD format"},
		{"unknown recipe", MealPlanInput{Name: "x", Date: "2024-06-02", RecipeID: "nope"}, "Recipe does not exist"},
		{"name too long", MealPlanInput{Name: strings.Repeat("m", 256), Date: "2024-06-02", RecipeID: f.recipe.ID}, "name must be at most 255 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(f.ctx, "alice", tt.input)
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}

	assert.Equal(t, before, f.store.Writes())
}

func TestMealPlanService_OwnerIsolation(t *testing.T) {
	t.Parallel()
	f := newMealPlanFixture(t)

	plan, err := f.svc.Create(f.ctx, "alice", MealPlanInput{Name: "Dinner", Date: "2024-06-03", RecipeID: f.recipe.ID})
	require.NoError(t, err)

	_, err = f.svc.Get(f.ctx, plan.ID, "bob")
	assert.ErrorIs(t, err, ErrMealPlanNotFound)

	_, err = f.svc.Update(f.ctx, plan.ID, "bob", MealPlanInput{Name: "Mine", Date: "2024-06-03", RecipeID: f.recipe.ID})
	assert.ErrorIs(t, err, ErrMealPlanNotFound)

	assert.ErrorIs(t, f.svc.Delete(f.ctx, plan.ID, "bob"), ErrMealPlanNotFound)

	bobs, err := f.svc.List(f.ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bobs)

	_, err = f.svc.Get(f.ctx, plan.ID, "alice")
	require.NoError(t, err, "alice's plan must survive bob's attempts")
}

func TestMealPlanService_Update(t *testing.T) {
	t.Parallel()
	f := newMealPlanFixture(t)

	plan, err := f.svc.Create(f.ctx, "alice", MealPlanInput{Name: "Lunch", Date: "2024-06-03", RecipeID: f.recipe.ID})
	require.NoError(t, err)

	updated, err := f.svc.Update(f.ctx, plan.ID, "alice", MealPlanInput{Name: "Late lunch", Date: "2024-06-04", RecipeID: f.recipe2.ID})
	require.NoError(t, err)
	assert.Equal(t, "Late lunch", updated.Name)
	assert.Equal(t, "2024-06-04", updated.Date.Format(model.DateLayout))
	assert.Equal(t, "Lasagna", *updated.RecipeTitle)

	_, err = f.svc.Update(f.ctx, "missing", "alice", MealPlanInput{Name: "x", Date: "2024-06-04", RecipeID: f.recipe.ID})
	assert.ErrorIs(t, err, ErrMealPlanNotFound)
}

func TestMealPlanService_DateRange(t *testing.T) {
	t.Parallel()
	f := newMealPlanFixture(t)

	for _, d := range []string{"2024-06-01", "2024-06-05", "2024-06-10"} {
		_, err := f.svc.Create(f.ctx, "alice", MealPlanInput{Name: "Plan " + d, Date: d, RecipeID: f.recipe.ID})
		require.NoError(t, err)
	}

	plans, err := f.svc.ListByDateRange(f.ctx, "alice", "2024-06-01", "2024-06-05")
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "2024-06-01", plans[0].Date.Format(model.DateLayout))

	single, err := f.svc.ListByDateRange(f.ctx, "alice", "2024-06-10", "2024-06-10")
	require.NoError(t, err)
	assert.Len(t, single, 1)

	tests := []struct {
		name       string
		start, end string
		wantMsg    string
	}{
		{"missing start", "", "2024-06-05", "Start date and end date are required"},
		{"missing end", "2024-06-01", "", "Start date and end date are required"},
		{"bad start", "June 1", "2024-06-05", "startDate must be in YYYY-MM-DD format"},
		{"bad end", "2024-06-01", "2024-13-01", "endDate must be in YYYY-MM-DD format"},
		{"reversed", "2024-06-05", "2024-06-01", "endDate must not be before startDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.ListByDateRange(f.ctx, "alice", tt.start, tt.end)
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestMealPlanService_Delete(t *testing.T) {
	t.Parallel()
	f := newMealPlanFixture(t)

	plan, err := f.svc.Create(f.ctx, "alice", MealPlanInput{Name: "Snack", Date: "2024-06-03", RecipeID: f.recipe.ID})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(f.ctx, plan.ID, "alice"))
	assert.ErrorIs(t, f.svc.Delete(f.ctx, plan.ID, "alice"), ErrMealPlanNotFound)
}

func TestMealPlanService_DisplayNameWhenRecipeDeleted(t *testing.T) {
	t.Parallel()
	f := newMealPlanFixture(t)

	plan, err := f.svc.Create(f.ctx, "alice", MealPlanInput{Name: "Dinner", Date: "2024-06-03", RecipeID: f.recipe.ID})
	require.NoError(t, err)

	require.NoError(t, f.store.DeleteRecipe(f.ctx, f.recipe.ID))

	got, err := f.svc.Get(f.ctx, plan.ID, "alice")
	require.NoError(t, err)
	assert.Nil(t, got.RecipeID)
	assert.Nil(t, got.RecipeTitle)
}
