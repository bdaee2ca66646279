package cache

import (
	"admin-service/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound means no live token is recorded for the user.
var ErrSessionNotFound = fmt.Errorf("session %w", repository.ErrNotFound)

// RedisSessionStore keeps one bearer token per user under session:<userID>.
// Every operation is a single Redis command, so TTL changes are atomic with
// respect to concurrent reads of the same key.
type RedisSessionStore struct {
	redis *redis.Client
}

func NewRedisSessionStore(redis *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{redis: redis}
}

func sessionKey(userID string) string {
	return "session:" + userID
}

func (s *RedisSessionStore) Set(ctx context.Context, userID, token string, ttl time.Duration) error {
	if err := s.redis.Set(ctx, sessionKey(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, userID string) (string, error) {
	token, err := s.redis.Get(ctx, sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	return token, nil
}

func (s *RedisSessionStore) TTL(ctx context.Context, userID string) (time.Duration, error) {
	ttl, err := s.redis.TTL(ctx, sessionKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read session ttl: %w", err)
	}
	// -2: no key, -1: key without expiry (never written by Set)
	if ttl < 0 {
		return 0, ErrSessionNotFound
	}
	return ttl, nil
}

func (s *RedisSessionStore) Expire(ctx context.Context, userID string, ttl time.Duration) error {
	ok, err := s.redis.Expire(ctx, sessionKey(userID), ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to update session ttl: %w", err)
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, userID string) error {
	if err := s.redis.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
