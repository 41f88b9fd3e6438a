// Package redisstore is the Redis-backed key-value store used for the
// answer cache.
package redisstore

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/askbench/askbench/pkg/models"
)

// Store wraps a Redis client with hit/miss accounting. The store holds no
// entry state of its own; expiry is enforced by Redis via SETEX.
type Store struct {
	client *redis.Client
	url    string

	hits   atomic.Int64
	misses atomic.Int64
	errors atomic.Int64
}

// Open connects to Redis at a redis:// URL. The connection is lazy; use
// Ping to probe it.
func Open(url string) (*Store, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Store{client: redis.NewClient(opt), url: url}, nil
}

// URL returns the URL the store was opened with.
func (s *Store) URL() string {
	return s.url
}

// Ping probes the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Get reads a key. An absent key returns ok=false with a nil error. Store
// errors also return ok=false so callers can fail open to miss semantics.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		s.misses.Add(1)
		return "", false, nil
	}
	if err != nil {
		s.errors.Add(1)
		return "", false, fmt.Errorf("cache get %s: %w", key, err)
	}
	s.hits.Add(1)
	return val, true, nil
}

// SetEx writes a key with a time-to-live. Writes are best-effort: callers
// log the error and carry on.
func (s *Store) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.SetEX(ctx, key, value, ttl).Err(); err != nil {
		s.errors.Add(1)
		return fmt.Errorf("cache setex %s: %w", key, err)
	}
	return nil
}

// Stats returns a snapshot of the store counters.
func (s *Store) Stats() models.CacheStats {
	return models.CacheStats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Errors: s.errors.Load(),
	}
}

// Close releases the client.
func (s *Store) Close() error {
	return s.client.Close()
}
