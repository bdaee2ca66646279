package cache

import (
	"context"
	"sync"
	"time"
)

type sessionEntry struct {
	token     string
	expiresAt time.Time
}

// MemorySessionStore is the in-process counterpart of RedisSessionStore.
// A janitor goroutine evicts expired entries until Close is called.
type MemorySessionStore struct {
	mu      sync.RWMutex
	entries map[string]sessionEntry
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

func NewMemorySessionStore(sweepEvery time.Duration) *MemorySessionStore {
	s := &MemorySessionStore{
		entries: make(map[string]sessionEntry),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	if sweepEvery > 0 {
		go s.sweep(sweepEvery)
	}
	return s
}

func (s *MemorySessionStore) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			now := s.now()
			for key, e := range s.entries {
				if !now.Before(e.expiresAt) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		case <-s.done:
			return
		}
	}
}

func (s *MemorySessionStore) Close() {
	s.once.Do(func() { close(s.done) })
}

// live returns the entry for userID if it has not expired. Caller holds a lock.
func (s *MemorySessionStore) live(userID string) (sessionEntry, bool) {
	e, ok := s.entries[userID]
	if !ok || !s.now().Before(e.expiresAt) {
		return sessionEntry{}, false
	}
	return e, true
}

func (s *MemorySessionStore) Set(_ context.Context, userID, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[userID] = sessionEntry{token: token, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.live(userID)
	if !ok {
		return "", ErrSessionNotFound
	}
	return e.token, nil
}

func (s *MemorySessionStore) TTL(_ context.Context, userID string) (time.Duration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.live(userID)
	if !ok {
		return 0, ErrSessionNotFound
	}
	return e.expiresAt.Sub(s.now()), nil
}

func (s *MemorySessionStore) Expire(_ context.Context, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(userID)
	if !ok {
		return ErrSessionNotFound
	}
	e.expiresAt = s.now().Add(ttl)
	s.entries[userID] = e
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, userID)
	return nil
}
