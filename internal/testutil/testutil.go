// Package testutil holds helpers shared by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/recipebook/recipebook/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420420

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// TruncateAll empties every application table. Migrations must already be applied.
func TruncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `TRUNCATE meal_plans, recipes, categories, users CASCADE`)
	if err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a test user with sensible defaults. The password hash is
// a placeholder; tests that log in must hash a real password.
func NewTestUser(t testing.TB, username string) *model.User {
	t.Helper()
	return &model.User{
		ID:           ulid.Make().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

// NewTestCategory creates a test category with sensible defaults.
func NewTestCategory(t testing.TB, name string) *model.Category {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	desc := name + " dishes"
	return &model.Category{
		ID:          ulid.Make().String(),
		Name:        name,
		Description: &desc,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewTestRecipe creates a test recipe with sensible defaults.
func NewTestRecipe(t testing.TB, title string) *model.Recipe {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &model.Recipe{
		ID:           ulid.Make().String(),
		Title:        title,
		Ingredients:  []string{"2 eggs", "1 cup flour", "1 cup milk"},
		Instructions: []string{"Whisk everything together", "Cook on a hot griddle"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewTestMealPlan creates a test meal plan for the given owner and recipe.
func NewTestMealPlan(t testing.TB, userID, recipeID string, date time.Time) *model.MealPlan {
	t.Helper()
	return &model.MealPlan{
		ID:        ulid.Make().String(),
		Name:      "Plan " + date.Format(model.DateLayout),
		Date:      date,
		RecipeID:  &recipeID,
		UserID:    userID,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

// UniqueName generates a unique name for tests.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
