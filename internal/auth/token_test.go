package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/recipebook/recipebook/internal/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testSecret, ttl)
	if err != nil {
		t.Fatalf("NewTokenService failed: %v", err)
	}
	return svc
}

func TestNewTokenService_WeakSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenService("short", time.Hour); !errors.Is(err, ErrWeakSecret) {
		t.Errorf("expected ErrWeakSecret, got %v", err)
	}
}

func TestNewTokenService_DefaultTTL(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 0)
	if svc.TTL() != DefaultTokenTTL {
		t.Errorf("TTL() = %v, want %v", svc.TTL(), DefaultTokenTTL)
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, time.Hour)
	user := &model.User{ID: "01HQZ8Y5N9C2W8R7M2V3K4J5H6", Username: "alice"}

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("UserID = %q, want %q", claims.UserID, user.ID)
	}
	if claims.Username != user.Username {
		t.Errorf("Username = %q, want %q", claims.Username, user.Username)
	}

	id := claims.Identity()
	if id.UserID != user.ID || id.Username != user.Username {
		t.Errorf("Identity() = %+v", id)
	}
}

func TestTokenService_Expiry(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 24*time.Hour)
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(&model.User{ID: "u1", Username: "bob"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	svc.now = func() time.Time { return issuedAt.Add(23 * time.Hour) }
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("token should be valid before expiry: %v", err)
	}

	svc.now = func() time.Time { return issuedAt.Add(25 * time.Hour) }
	_, err = svc.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token should also match ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Rejects(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, time.Hour)
	valid, err := svc.Issue(&model.User{ID: "u1", Username: "carol"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	other, err := NewTokenService("ffffffffffffffffffffffffffffffff", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService failed: %v", err)
	}
	foreign, err := other.Issue(&model.User{ID: "u1", Username: "carol"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "u1",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "u1"}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"malformed", "not.a.jwt"},
		{"garbage", "abc"},
		{"wrong secret", foreign},
		{"tampered payload", tampered},
		{"alg none", none},
		{"missing subject", noSubject},
		{"missing expiry", noExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := svc.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify(%s) error = %v, want ErrInvalidToken", tt.name, err)
			}
		})
	}
}
