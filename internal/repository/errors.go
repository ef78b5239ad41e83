package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
// Returns the violated constraint name.
func isUniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// isForeignKeyViolation checks if the error is a PostgreSQL foreign key violation.
// Returns the violated constraint name.
func isForeignKeyViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// foreignKeyErrors maps a violated foreign key to the sentinel it means.
// A user key fails when the account was deleted after its token was issued.
var foreignKeyErrors = map[string]error{
	"recipes_category_id_fkey":  ErrInvalidCategory,
	"recipes_user_id_fkey":      ErrUserNotFound,
	"meal_plans_recipe_id_fkey": ErrInvalidRecipe,
	"meal_plans_user_id_fkey":   ErrUserNotFound,
}

// foreignKeyError returns the sentinel for a known foreign key violation, or nil.
func foreignKeyError(err error) error {
	if constraint, ok := isForeignKeyViolation(err); ok {
		return foreignKeyErrors[constraint]
	}
	return nil
}
