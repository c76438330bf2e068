// Package store defines the key-value port used by the scoring engine and
// its adapters (Redis for deployments, an in-process map for development
// and tests).
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key is absent from the store.
var ErrNotFound = errors.New("key not found")

// Store is a minimal key-value abstraction. Values are opaque strings;
// a zero TTL means no expiration.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
