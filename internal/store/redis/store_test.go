package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/lattice/internal/store"
	redisStore "github.com/aretw0/lattice/internal/store/redis"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...redisStore.Option) (*redisStore.Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return redisStore.NewFromClient(client, opts...), mr
}

func TestRedisStore_GetSet(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))

	require.NoError(t, s.Set(ctx, "uid:abc", "3.5", 0))
	got, err := s.Get(ctx, "uid:abc")
	require.NoError(t, err)
	assert.Equal(t, "3.5", got)
}

func TestRedisStore_Prefix(t *testing.T) {
	s, mr := newTestStore(t, redisStore.WithPrefix("scoring:"))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "i:1", `["books"]`, 0))
	assert.True(t, mr.Exists("scoring:i:1"), "keys are namespaced by prefix")
}

func TestRedisStore_TTL(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))

	mr.FastForward(2 * time.Minute)
	_, err := s.Get(ctx, "k")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestRedisStore_Ping(t *testing.T) {
	s, mr := newTestStore(t)
	require.NoError(t, s.Ping(context.Background()))

	mr.Close()
	assert.Error(t, s.Ping(context.Background()))
}
