package service

import (
	"admin-service/internal/auth"
	"admin-service/internal/cache"
	"admin-service/internal/models"
	"admin-service/internal/repository"
	"admin-service/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	store    *memory.Store
	sessions *cache.MemorySessionStore
	tokens   *auth.JWTIssuer
	auth     *AuthService
	users    *UserService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	store := memory.NewStore()
	sessions := cache.NewMemorySessionStore(0)
	t.Cleanup(sessions.Close)

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	tokens := auth.NewJWTIssuer("test-secret")

	return &authFixture{
		store:    store,
		sessions: sessions,
		tokens:   tokens,
		auth:     NewAuthService(store.Users(), hasher, tokens, sessions),
		users:    NewUserService(store.Users(), hasher, sessions),
	}
}

func (f *authFixture) register(t *testing.T, email, password, role string) *models.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), RegisterInput{
		Name:     "Ana",
		Email:    email,
		Phone:    "555-0100",
		Password: password,
		Role:     RoleInput{RoleType: role, Description: role + " role"},
	})
	require.NoError(t, err)
	return u
}

func TestAuthService_LoginIssuesAndRecordsToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.register(t, "ana@example.com", "s3cret", "admin")

	result, err := f.auth.Login(ctx, LoginInput{Email: "ana@example.com", Password: "s3cret"})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, "Ana", result.User.Username)
	assert.Equal(t, "admin", result.User.Role.RoleType)

	stored, err := f.sessions.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, result.AccessToken, stored)

	ttl, err := f.sessions.TTL(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, SessionTTL.Seconds(), ttl.Seconds(), 5)

	claims, err := f.tokens.Verify(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestAuthService_LoginRejections(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.register(t, "ana@example.com", "s3cret", "user")
	gone := f.register(t, "gone@example.com", "s3cret", "user")
	_, err := f.users.Delete(ctx, gone.ID)
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   LoginInput
		wantErr error
		userID  string
	}{
		{"wrong password", LoginInput{Email: "ana@example.com", Password: "nope"}, ErrUnauthorized, user.ID},
		{"unknown email", LoginInput{Email: "who@example.com", Password: "s3cret"}, ErrUnauthorized, ""},
		{"deleted user", LoginInput{Email: "gone@example.com", Password: "s3cret"}, ErrUnauthorized, gone.ID},
		{"missing password", LoginInput{Email: "ana@example.com"}, repository.ErrInvalidInput, user.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := f.auth.Login(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
			if tt.userID != "" {
				_, err := f.sessions.Get(ctx, tt.userID)
				assert.ErrorIs(t, err, repository.ErrNotFound)
			}
		})
	}
}

func TestAuthService_TokenTTLAndRefresh(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.register(t, "ana@example.com", "s3cret", "user")

	_, err := f.auth.TokenTTL(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, f.auth.RefreshToken(ctx, user.ID), repository.ErrNotFound)

	_, err = f.auth.Login(ctx, LoginInput{Email: "ana@example.com", Password: "s3cret"})
	require.NoError(t, err)

	fixed := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	f.auth.now = func() time.Time { return fixed }

	ttl, err := f.auth.TokenTTL(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1800, ttl.TimeToLive, 5)
	assert.Regexp(t, `^12:[23]\d:\d{2}$`, ttl.ExpTime)

	require.NoError(t, f.auth.RefreshToken(ctx, user.ID))
	ttl, err = f.auth.TokenTTL(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 900, ttl.TimeToLive, 5)

	_, err = f.auth.TokenTTL(ctx, "")
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestAuthService_LogoutRevokes(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.register(t, "ana@example.com", "s3cret", "user")

	result, err := f.auth.Login(ctx, LoginInput{Email: "ana@example.com", Password: "s3cret"})
	require.NoError(t, err)

	claims, err := f.auth.Authenticate(ctx, result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	require.NoError(t, f.auth.Logout(ctx, user.ID))

	_, err = f.auth.Authenticate(ctx, result.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.ErrorIs(t, f.auth.Logout(ctx, ""), repository.ErrInvalidInput)
}

func TestAuthService_AuthenticateRejects(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.register(t, "ana@example.com", "s3cret", "user")

	_, err := f.auth.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// valid signature but never recorded as a session
	unrecorded, err := f.tokens.Sign(user.ID, "user")
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, unrecorded)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// a later login supersedes the earlier token
	require.NoError(t, f.sessions.Set(ctx, user.ID, "some-other-token", time.Minute))
	_, err = f.auth.Authenticate(ctx, unrecorded)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
