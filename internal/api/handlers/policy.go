package handlers

import (
	"admin-service/internal/auth"
	"admin-service/internal/service"
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
)

const RoleAdmin = "admin"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// Policy gates routes on a bearer token that must also be the live session
// of its user. A disabled policy lets every request through untouched.
type Policy struct {
	authn   Authenticator
	enabled bool
}

func NewPolicy(authn Authenticator, enabled bool) *Policy {
	return &Policy{authn: authn, enabled: enabled}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Authenticated rejects requests without a valid session token and
// attaches the caller's claims to the request context.
func (p *Policy) Authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !p.enabled {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
			return
		}

		claims, err := p.authn.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired session", nil)
				return
			}
			writeServiceError(w, err, "failed to authenticate")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	})
}

// RequireRole must run after Authenticated.
func (p *Policy) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !p.enabled {
				next.ServeHTTP(w, r)
				return
			}

			claims, ok := auth.ClaimsFrom(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
				return
			}
			if !slices.Contains(roles, claims.Role) {
				writeError(w, http.StatusForbidden, "forbidden", "role "+claims.Role+" may not perform this action", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
