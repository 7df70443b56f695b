package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

// Role distinguishes regular shoppers from administrative staff.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Identity is the authenticated caller, as asserted by the API gateway or a
// signed token.
type Identity struct {
	Email string
	Role  Role
}

// IsAdmin reports whether the identity holds administrative privilege.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

var ErrUnauthenticated = errors.New("request is not authenticated")

type contextKey struct{}

// WithIdentity stores the identity on the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity previously stored on the context.
func FromContext(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	if !ok || id.Email == "" {
		return Identity{}, ErrUnauthenticated
	}
	return id, nil
}

// Claims carried in service-issued tokens.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken validates an HMAC-signed bearer token and extracts the identity.
func ParseToken(tokenString string, secret []byte) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if !token.Valid || claims.Email == "" {
		return Identity{}, ErrUnauthenticated
	}

	role := RoleUser
	if strings.EqualFold(claims.Role, string(RoleAdmin)) {
		role = RoleAdmin
	}
	return Identity{Email: claims.Email, Role: role}, nil
}
