package model

// Identity is the caller resolved from a verified session token.
// It is injected into the request context by the auth middleware.
type Identity struct {
	UserID   string
	Username string
}
