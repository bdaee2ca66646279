package handlers

import (
	"admin-service/internal/auth"
	"admin-service/internal/service"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeAuthenticator map[string]*auth.Claims

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (*auth.Claims, error) {
	if token == "boom" {
		return nil, errors.New("redis down")
	}
	c, ok := f[token]
	if !ok {
		return nil, service.ErrUnauthorized
	}
	return c, nil
}

func TestPolicy(t *testing.T) {
	authn := fakeAuthenticator{
		"admin-token":  {UserID: "a", Role: "admin"},
		"member-token": {UserID: "m", Role: "user"},
	}

	var seen string
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, ok := auth.ClaimsFrom(r.Context()); ok {
			seen = c.UserID
		}
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		enabled  bool
		header   string
		wantCode int
		wantUser string
	}{
		{"admin passes", true, "Bearer admin-token", http.StatusNoContent, "a"},
		{"scheme is case insensitive", true, "bearer admin-token", http.StatusNoContent, "a"},
		{"member forbidden", true, "Bearer member-token", http.StatusForbidden, ""},
		{"missing header", true, "", http.StatusUnauthorized, ""},
		{"wrong scheme", true, "Basic admin-token", http.StatusUnauthorized, ""},
		{"unknown token", true, "Bearer nope", http.StatusUnauthorized, ""},
		{"store failure", true, "Bearer boom", http.StatusInternalServerError, ""},
		{"disabled", false, "", http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			p := NewPolicy(authn, tt.enabled)
			h := p.Authenticated(p.RequireRole(RoleAdmin)(final))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantUser, seen)
		})
	}
}
