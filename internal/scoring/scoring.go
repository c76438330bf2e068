// Package scoring implements the score and interests computations behind
// the online_score and clients_interests methods, with a cache-aside store.
package scoring

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/aretw0/lattice/internal/store"
)

// DefaultCacheTTL is how long computed scores stay cached.
const DefaultCacheTTL = time.Hour

// defaultInterests is the fallback pool sampled when the store has no
// interests recorded for a client.
var defaultInterests = []string{
	"cars", "pets", "travel", "hi-tech", "sport", "music",
	"books", "tv", "cinema", "geek", "otus",
}

// Person carries the identity fields scored by online_score. Empty strings
// and a zero gender count as absent, matching the scoring rules.
type Person struct {
	Phone     string
	Email     string
	FirstName string
	LastName  string
	Birthday  string
	Gender    int
}

// Engine computes scores and interests over an optional Store.
type Engine struct {
	store  store.Store
	ttl    time.Duration
	logger *slog.Logger
	intn   func(n int) int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCacheTTL overrides the score cache expiration.
func WithCacheTTL(ttl time.Duration) Option {
	return func(e *Engine) {
		e.ttl = ttl
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRand injects the sampler used for fallback interests, for
// deterministic tests.
func WithRand(intn func(n int) int) Option {
	return func(e *Engine) {
		e.intn = intn
	}
}

// New creates an Engine. The store may be nil; scores are then computed on
// every call and interests always sampled.
func New(st store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:  st,
		ttl:    DefaultCacheTTL,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		intn:   rand.IntN,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score computes the online score for p: 1.5 for a phone, 1.5 for an
// email, 1.5 for birthday plus gender, 0.5 for a full name. Results are
// cached keyed by the identity fields; cache failures only cost the
// recomputation.
func (e *Engine) Score(ctx context.Context, p Person) float64 {
	key := cacheKey(p)

	if e.store != nil {
		if cached, err := e.store.Get(ctx, key); err == nil {
			if score, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil {
				return score
			}
		} else if !errors.Is(err, store.ErrNotFound) {
			e.logger.Warn("score cache read failed", "error", err)
		}
	}

	score := 0.0
	if p.Phone != "" {
		score += 1.5
	}
	if p.Email != "" {
		score += 1.5
	}
	if p.Birthday != "" && p.Gender != 0 {
		score += 1.5
	}
	if p.FirstName != "" && p.LastName != "" {
		score += 0.5
	}

	if e.store != nil {
		if err := e.store.Set(ctx, key, strconv.FormatFloat(score, 'f', -1, 64), e.ttl); err != nil {
			e.logger.Warn("score cache write failed", "error", err)
		}
	}
	return score
}

// Interests returns the recorded interests for a client id, falling back
// to a two-element sample of the built-in pool when the store has none.
func (e *Engine) Interests(ctx context.Context, clientID int) ([]string, error) {
	if e.store != nil {
		val, err := e.store.Get(ctx, interestsKey(clientID))
		switch {
		case err == nil:
			var interests []string
			if jsonErr := json.Unmarshal([]byte(val), &interests); jsonErr != nil {
				return nil, fmt.Errorf("corrupt interests for client %d: %w", clientID, jsonErr)
			}
			return interests, nil
		case !errors.Is(err, store.ErrNotFound):
			return nil, err
		}
	}
	return e.sample(2), nil
}

// sample picks n distinct entries from the default pool.
func (e *Engine) sample(n int) []string {
	pool := make([]string, len(defaultInterests))
	copy(pool, defaultInterests)
	out := make([]string, 0, n)
	for range n {
		i := e.intn(len(pool))
		out = append(out, pool[i])
		pool = append(pool[:i], pool[i+1:]...)
	}
	return out
}

func cacheKey(p Person) string {
	sum := md5.Sum([]byte(p.FirstName + p.LastName + p.Phone + p.Birthday))
	return fmt.Sprintf("uid:%x", sum)
}

func interestsKey(clientID int) string {
	return fmt.Sprintf("i:%d", clientID)
}
