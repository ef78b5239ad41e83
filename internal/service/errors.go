// Package service provides business logic for the application.
package service

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
)

// ErrValidation matches every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError is a client input error. Its message is safe to show to users.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// tooLong reports a value wider than its column, counted in characters.
func tooLong(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return invalid(fmt.Sprintf("%s must be at most %d characters", field, limit))
	}
	return nil
}

// Service errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrMealPlanNotFound   = errors.New("meal plan not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAdminRequired      = errors.New("admin access required")

	ErrUsernameExists   = &ValidationError{Message: "Username already exists"}
	ErrEmailExists      = &ValidationError{Message: "Email already exists"}
	ErrCannotDeleteSelf = &ValidationError{Message: "Cannot delete your own account"}
)

// generateULID creates a new ULID string.
func generateULID() string {
	return ulid.Make().String()
}
