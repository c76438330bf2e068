// Package memory provides an in-process Store adapter, used when no Redis
// backend is configured and as the default in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/lattice/internal/store"
)

type entry struct {
	value     string
	expiresAt time.Time // zero = no expiration
}

// Store implements store.Store with a mutex-guarded map.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the value for key, or store.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return "", store.ErrNotFound
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return "", store.ErrNotFound
	}
	return e.value, nil
}

// Set stores value under key. A zero ttl never expires.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}
