// Package cache provides a Redis-backed cache for the bed occupancy stats
// read path. The cache is optional: a nil *StatsCache is a no-op, so the
// server runs unchanged when REDIS_URL is not configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const statsKey = "hms:bed_stats"

// ErrMiss is returned when the cached value is absent or expired.
var ErrMiss = errors.New("cache miss")

// StatsCache caches the bed stats aggregate with a short TTL and is
// invalidated on every bed-mutating operation.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects a StatsCache to the Redis instance at redisURL. An empty URL
// returns (nil, nil) so callers can wire the cache unconditionally.
func New(redisURL string, ttl time.Duration) (*StatsCache, error) {
	if redisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &StatsCache{client: redis.NewClient(opts), ttl: ttl}, nil
}

// NewWithClient wraps an existing client, for tests.
func NewWithClient(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

// Get unmarshals the cached stats into dest, returning ErrMiss when cold.
func (c *StatsCache) Get(ctx context.Context, dest interface{}) error {
	if c == nil {
		return ErrMiss
	}
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Set stores the stats value under the configured TTL.
func (c *StatsCache) Set(ctx context.Context, value interface{}) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey, raw, c.ttl).Err()
}

// Invalidate drops the cached stats after a bed mutation.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, statsKey).Err()
}

// Close releases the underlying client.
func (c *StatsCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
