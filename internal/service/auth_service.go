package service

import (
	"admin-service/internal/auth"
	"admin-service/internal/models"
	"admin-service/internal/repository"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

const (
	// SessionTTL is how long a freshly issued token stays recorded.
	SessionTTL = 1800 * time.Second
	// RefreshTTL is the lifetime a session gets when it is refreshed.
	RefreshTTL = 900 * time.Second
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Sign(userID, role string) (string, error)
	Verify(token string) (*auth.Claims, error)
}

// SessionStore is the ephemeral per-user token record with expiry.
type SessionStore interface {
	Set(ctx context.Context, userID, token string, ttl time.Duration) error
	Get(ctx context.Context, userID string) (string, error)
	TTL(ctx context.Context, userID string) (time.Duration, error)
	Expire(ctx context.Context, userID string, ttl time.Duration) error
	Delete(ctx context.Context, userID string) error
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginUser struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

type LoginResult struct {
	AccessToken string    `json:"accessToken"`
	User        LoginUser `json:"user"`
}

type TokenTTL struct {
	TimeToLive int64  `json:"timeToLive"`
	ExpTime    string `json:"expTime"`
}

type AuthService struct {
	users    repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	sessions SessionStore
	now      func() time.Time
}

func NewAuthService(users repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer, sessions SessionStore) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		sessions: sessions,
		now:      time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, in.Password); err != nil {
		if errors.Is(err, auth.ErrMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	token, err := s.tokens.Sign(user.ID, user.Role.RoleType)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Set(ctx, user.ID, token, SessionTTL); err != nil {
		return nil, err
	}

	log.Printf("user %s logged in", user.ID)

	return &LoginResult{
		AccessToken: token,
		User: LoginUser{
			ID:       user.ID,
			Username: user.Name,
			Email:    user.Email,
			Role:     user.Role,
		},
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: userId is required", repository.ErrInvalidInput)
	}
	return s.sessions.Delete(ctx, userID)
}

// TokenTTL reports how long the user's session has left.
func (s *AuthService) TokenTTL(ctx context.Context, userID string) (*TokenTTL, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", repository.ErrInvalidInput)
	}

	ttl, err := s.sessions.TTL(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &TokenTTL{
		TimeToLive: int64(ttl / time.Second),
		ExpTime:    s.now().Add(ttl).Format(time.TimeOnly),
	}, nil
}

// RefreshToken resets the session lifetime to RefreshTTL.
func (s *AuthService) RefreshToken(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: userId is required", repository.ErrInvalidInput)
	}
	return s.sessions.Expire(ctx, userID, RefreshTTL)
}

// Authenticate accepts a bearer token only if it verifies and is still the
// live session token of its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	current, err := s.sessions.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: session expired", ErrUnauthorized)
		}
		return nil, err
	}
	if current != token {
		return nil, fmt.Errorf("%w: token superseded", ErrUnauthorized)
	}

	return claims, nil
}
