// Package model defines domain entities for the application.
package model

import "time"

// User is a registered account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Column widths for users, in characters.
const (
	MaxUsernameLength = 50
	MaxEmailLength    = 255
)
