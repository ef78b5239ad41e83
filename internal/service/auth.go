package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/recipebook/recipebook/internal/auth"
	"github.com/recipebook/recipebook/internal/metrics"
	"github.com/recipebook/recipebook/internal/model"
	"github.com/recipebook/recipebook/internal/repository"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(user *model.User) (string, error)
}

// AuthService handles registration, login, and user administration.
type AuthService struct {
	users   UserStore
	tokens  TokenIssuer
	admins  map[string]struct{}
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService. Usernames in adminUsernames are
// granted admin on registration and promoted on login.
func NewAuthService(users UserStore, tokens TokenIssuer, adminUsernames []string, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	admins := make(map[string]struct{}, len(adminUsernames))
	for _, name := range adminUsernames {
		admins[name] = struct{}{}
	}
	return &AuthService{
		users:   users,
		tokens:  tokens,
		admins:  admins,
		metrics: recorder,
	}
}

// RegisterInput defines input for registering an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Session is an authenticated user together with a fresh token.
type Session struct {
	User  *model.User
	Token string
}

// Register creates an account and returns a session for it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return nil, invalid("Username, email, and password are required")
	}
	if err := tooLong("username", username, model.MaxUsernameLength); err != nil {
		return nil, err
	}
	if err := tooLong("email", email, model.MaxEmailLength); err != nil {
		return nil, err
	}

	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           generateULID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      s.isConfiguredAdmin(username),
		CreatedAt:    time.Now().UTC(),
	}

	// The unique constraints still guard against a concurrent registration.
	if err := s.users.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			return nil, ErrUsernameExists
		case errors.Is(err, repository.ErrEmailExists):
			return nil, ErrEmailExists
		}
		return nil, err
	}

	s.metrics.IncUserRegistered()

	return s.newSession(user)
}

// Login verifies credentials and returns a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, invalid("Username and password are required")
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLogin(false)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		s.metrics.IncLogin(false)
		return nil, ErrInvalidCredentials
	}

	if auth.IsBcryptHash(user.PasswordHash) {
		// Best effort: a failed upgrade leaves the legacy hash usable.
		if hash, err := auth.HashPassword(password); err == nil {
			if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err == nil {
				user.PasswordHash = hash
			}
		}
	}

	if !user.IsAdmin && s.isConfiguredAdmin(user.Username) {
		if err := s.users.SetUserAdmin(ctx, user.ID, true); err != nil {
			return nil, err
		}
		user.IsAdmin = true
	}

	s.metrics.IncLogin(true)

	return s.newSession(user)
}

// Me returns the account of the given user.
func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns every account. The caller must be an admin.
func (s *AuthService) ListUsers(ctx context.Context, callerID string) ([]*model.User, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	return s.users.ListUsers(ctx)
}

// DeleteUser removes an account. The caller must be an admin and cannot delete itself.
func (s *AuthService) DeleteUser(ctx context.Context, callerID, targetID string) error {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	if callerID == targetID {
		return ErrCannotDeleteSelf
	}

	if err := s.users.DeleteUser(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// requireAdmin reads the admin flag from storage so revocations apply immediately.
func (s *AuthService) requireAdmin(ctx context.Context, callerID string) error {
	caller, err := s.users.GetUserByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrAdminRequired
		}
		return err
	}
	if !caller.IsAdmin {
		return ErrAdminRequired
	}
	return nil
}

func (s *AuthService) isConfiguredAdmin(username string) bool {
	_, ok := s.admins[username]
	return ok
}

func (s *AuthService) newSession(user *model.User) (*Session, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &Session{User: user, Token: token}, nil
}
