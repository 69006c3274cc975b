package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisCache(t *testing.T, opTimeout time.Duration) (*RedisCache[string], *miniredis.Miniredis) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	rc := NewRedisCache[string](&RedisOptions{
		Addr:            s.Addr(),
		PoolSize:        5,
		MinIdleConns:    1,
		MinRetryBackoff: 1 * time.Millisecond,
		MaxRetryBackoff: 10 * time.Millisecond,
		OpTimeout:       opTimeout,
	})
	t.Cleanup(func() { _ = rc.Close() })
	return rc, s
}

func TestRedisCacheDefaultOpTimeout(t *testing.T) {
	rc, _ := setupRedisCache(t, 0)
	ctx := context.Background()

	assert.NoError(t, rc.Set(ctx, "foo", "bar", 0))
	v, err := rc.Get(ctx, "foo")
	assert.NoError(t, err)
	assert.Equal(t, "bar", v)
}

func TestRedisCacheTTL(t *testing.T) {
	rc, s := setupRedisCache(t, 100*time.Millisecond)
	ctx := context.Background()

	assert.NoError(t, rc.Set(ctx, "temp", "x", 1*time.Second))
	s.FastForward(2 * time.Second)
	_, err := rc.Get(ctx, "temp")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheDelete(t *testing.T) {
	rc, _ := setupRedisCache(t, 100*time.Millisecond)
	ctx := context.Background()

	assert.NoError(t, rc.Set(ctx, "foo", "bar", 0))
	assert.NoError(t, rc.Delete(ctx, "foo"))
	_, err := rc.Get(ctx, "foo")
	assert.ErrorIs(t, err, ErrCacheMiss)

	// Deleting a missing key is fine.
	assert.NoError(t, rc.Delete(ctx, "foo"))
}

func TestRedisCacheStructValues(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	rc := NewRedisCache[payload](&RedisOptions{Addr: s.Addr(), OpTimeout: 100 * time.Millisecond})
	defer rc.Close()
	ctx := context.Background()

	assert.NoError(t, rc.Set(ctx, "p", payload{Name: "events", Count: 3}, 0))
	got, err := rc.Get(ctx, "p")
	assert.NoError(t, err)
	assert.Equal(t, payload{Name: "events", Count: 3}, got)
}
