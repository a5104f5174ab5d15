package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when the key is absent or Redis is not configured
var ErrCacheMiss = errors.New("redis: cache miss")

// JSONCache stores JSON-encoded values under a key prefix
type JSONCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewJSONCache returns a cache bound to rdb. A nil rdb yields a cache that always misses.
func NewJSONCache(rdb *redis.Client, prefix string, ttl time.Duration) *JSONCache {
	return &JSONCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *JSONCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c == nil || c.rdb == nil || c.ttl <= 0 {
		return ErrCacheMiss
	}
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (c *JSONCache) Set(ctx context.Context, key string, value interface{}) error {
	if c == nil || c.rdb == nil || c.ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.prefix+key, raw, c.ttl).Err()
}

// InvalidatePrefix drops every key under the cache prefix
func (c *JSONCache) InvalidatePrefix(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	iter := c.rdb.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
