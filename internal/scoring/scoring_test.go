package scoring

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/lattice/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	e := New(nil)
	ctx := context.Background()

	cases := []struct {
		name string
		p    Person
		want float64
	}{
		{"empty", Person{}, 0},
		{"phone only", Person{Phone: "79175002040"}, 1.5},
		{"email only", Person{Email: "x@y"}, 1.5},
		{"phone and email", Person{Phone: "79175002040", Email: "x@y"}, 3.0},
		{"full name", Person{FirstName: "a", LastName: "b"}, 0.5},
		{"birthday and gender", Person{Birthday: "01.01.1990", Gender: 1}, 1.5},
		{"birthday with unknown gender", Person{Birthday: "01.01.1990", Gender: 0}, 0},
		{"everything", Person{
			Phone: "79175002040", Email: "x@y",
			FirstName: "a", LastName: "b",
			Birthday: "01.01.1990", Gender: 2,
		}, 5.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, e.Score(ctx, tc.p))
		})
	}
}

func TestScore_CacheHit(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	p := Person{Phone: "79175002040", Email: "x@y"}

	e := New(st)
	require.Equal(t, 3.0, e.Score(ctx, p))

	// A poisoned cache entry proves the second call reads the cache.
	require.NoError(t, st.Set(ctx, cacheKey(p), "9.5", 0))
	assert.Equal(t, 9.5, e.Score(ctx, p))
}

func TestScore_CacheKeyDistinguishesIdentities(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	e := New(st)

	a := e.Score(ctx, Person{Phone: "79175002040", Email: "x@y"})
	b := e.Score(ctx, Person{FirstName: "a", LastName: "b"})
	assert.NotEqual(t, a, b, "different identities must not share a cache slot")
}

func TestInterests_FromStore(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	recorded, err := json.Marshal([]string{"books", "travel"})
	require.NoError(t, err)
	require.NoError(t, st.Set(ctx, "i:7", string(recorded), 0))

	e := New(st)
	got, err := e.Interests(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"books", "travel"}, got)
}

func TestInterests_Fallback(t *testing.T) {
	// Deterministic sampler: always picks the first remaining entry.
	e := New(memory.New(), WithRand(func(n int) int { return 0 }))

	got, err := e.Interests(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"cars", "pets"}, got)
}

func TestInterests_SampleIsDistinct(t *testing.T) {
	e := New(nil)
	got, err := e.Interests(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0], got[1])
}

func TestInterests_CorruptStoreValue(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, "i:1", "not json", 0))

	e := New(st)
	_, err := e.Interests(ctx, 1)
	assert.Error(t, err)
}

func TestCacheTTLOption(t *testing.T) {
	e := New(memory.New(), WithCacheTTL(time.Minute))
	assert.Equal(t, time.Minute, e.ttl)
}
