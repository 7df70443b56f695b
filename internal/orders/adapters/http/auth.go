package http

import (
	"net/http"
	"strings"

	"github.com/shopkit/ordering/internal/auth"
)

// WithIdentity extracts the caller identity and stores it on the request
// context. Two sources are accepted: a service-issued bearer token, or the
// X-User-Email / X-User-Role headers set by the API gateway after it has
// verified the token itself. Requests with neither are rejected.
func WithIdentity(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
				identity, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
				if err != nil {
					writeError(w, http.StatusUnauthorized, "invalid token")
					return
				}
				next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
				return
			}

			email := strings.TrimSpace(r.Header.Get("X-User-Email"))
			if email == "" {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			role := auth.RoleUser
			if strings.EqualFold(r.Header.Get("X-User-Role"), string(auth.RoleAdmin)) {
				role = auth.RoleAdmin
			}

			identity := auth.Identity{Email: email, Role: role}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}
