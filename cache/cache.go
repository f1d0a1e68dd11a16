// Package cache is a Redis-backed TTL cache for derived reads, so a
// GetTimeState snapshot or a season's MetaWeights survive a process
// restart instead of living only in one server's memory.
package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"esports-career-sim/pkg/logger"
)

// Cache wraps a go-redis client with the narrow get/set-with-TTL surface
// the simulation core needs.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to redisURL (a redis:// DSN) and returns a Cache using ttl
// for every write. A nil *Cache (returned alongside an error) must not be
// used; callers that can't reach Redis should fall back to recomputing
// values directly.
func New(redisURL string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &Cache{client: client, ttl: ttl}, nil
}

// Get unmarshals the cached value for key into dest. A cache miss
// returns (false, nil), not an error.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set marshals value and stores it under key with the cache's configured
// TTL. Failures are logged, not returned; the cache is never
// load-bearing for correctness.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn("cache marshal failed", logger.Fields{"key": key, "error": err.Error()})
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.Warn("cache set failed", logger.Fields{"key": key, "error": err.Error()})
	}
}

// Invalidate deletes key, used whenever a mutation makes a cached
// snapshot (e.g. GetTimeState) stale.
func (c *Cache) Invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.Warn("cache invalidate failed", logger.Fields{"key": key, "error": err.Error()})
	}
}

// Close releases the underlying connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

// TimeStateKey and MetaWeightsKey are the two cache namespaces this core
// uses.
func TimeStateKey(saveID string) string {
	return "simcore:time_state:" + saveID
}

func MetaWeightsKey(saveID string, season uint32) string {
	return "simcore:meta_weights:" + saveID + ":" + strconv.FormatUint(uint64(season), 10)
}
