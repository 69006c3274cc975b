package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	RedisBackend  = "redis"
	MemoryBackend = "memory"
)

// ErrCacheMiss is returned when a key is absent or expired. Callers treat
// misses and backend errors identically: fall through to fresh computation.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache stores JSON-serializable values under string keys with a TTL.
type Cache[V any] interface {
	// Get returns the value or ErrCacheMiss.
	Get(ctx context.Context, key string) (V, error)
	// Set stores value under key. Zero ttl means no expiration.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// New builds a cache for the named backend. Redis options are required for
// the redis backend and ignored otherwise.
func New[V any](backend string, redisOpts *RedisOptions) (Cache[V], error) {
	switch backend {
	case RedisBackend:
		if redisOpts == nil {
			return nil, fmt.Errorf("cache: redis backend requires options")
		}
		return NewRedisCache[V](redisOpts), nil
	case MemoryBackend:
		return NewMemoryCache[V](), nil
	default:
		return nil, fmt.Errorf("cache: unknown backend %q", backend)
	}
}
