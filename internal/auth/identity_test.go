package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/shopkit/ordering/internal/auth"
)

func signToken(t *testing.T, secret []byte, email, role string, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestParseToken(t *testing.T) {
	secret := []byte("test-secret")

	t.Run("valid user token", func(t *testing.T) {
		signed := signToken(t, secret, "buyer@example.com", "USER", time.Now().Add(time.Hour))

		identity, err := auth.ParseToken(signed, secret)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if identity.Email != "buyer@example.com" {
			t.Errorf("expected email buyer@example.com, got %s", identity.Email)
		}
		if identity.IsAdmin() {
			t.Error("expected non-admin identity")
		}
	})

	t.Run("admin role is case insensitive", func(t *testing.T) {
		signed := signToken(t, secret, "admin@example.com", "admin", time.Now().Add(time.Hour))

		identity, err := auth.ParseToken(signed, secret)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if !identity.IsAdmin() {
			t.Error("expected admin identity")
		}
	})

	t.Run("unknown role falls back to user", func(t *testing.T) {
		signed := signToken(t, secret, "buyer@example.com", "SUPERVISOR", time.Now().Add(time.Hour))

		identity, err := auth.ParseToken(signed, secret)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if identity.Role != auth.RoleUser {
			t.Errorf("expected role %s, got %s", auth.RoleUser, identity.Role)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		signed := signToken(t, secret, "buyer@example.com", "USER", time.Now().Add(-time.Hour))

		_, err := auth.ParseToken(signed, secret)
		if !errors.Is(err, auth.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got: %v", err)
		}
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		signed := signToken(t, []byte("other-secret"), "buyer@example.com", "USER", time.Now().Add(time.Hour))

		_, err := auth.ParseToken(signed, secret)
		if !errors.Is(err, auth.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got: %v", err)
		}
	})

	t.Run("token without email is rejected", func(t *testing.T) {
		signed := signToken(t, secret, "", "USER", time.Now().Add(time.Hour))

		_, err := auth.ParseToken(signed, secret)
		if !errors.Is(err, auth.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got: %v", err)
		}
	})
}

func TestIdentityContext(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		ctx := auth.WithIdentity(context.Background(), auth.Identity{Email: "buyer@example.com", Role: auth.RoleUser})

		identity, err := auth.FromContext(ctx)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if identity.Email != "buyer@example.com" {
			t.Errorf("expected stored identity, got %+v", identity)
		}
	})

	t.Run("missing identity", func(t *testing.T) {
		_, err := auth.FromContext(context.Background())
		if !errors.Is(err, auth.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got: %v", err)
		}
	})
}
