package cache

import (
	"context"
	"encoding/json"
	"time"
)

// LayeredCache implements a two-level cache (L1: memory, L2: Redis).
type LayeredCache struct {
	memCache   *MemoryCache
	redisCache *RedisCache
}

// NewLayeredCache creates a layered cache with memory and Redis.
func NewLayeredCache(redisCache *RedisCache, memOpts ...MemoryOption) *LayeredCache {
	return &LayeredCache{
		memCache:   NewMemoryCache(memOpts...),
		redisCache: redisCache,
	}
}

func (lc *LayeredCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	// Write-through: Redis first, then memory
	if err := lc.redisCache.Set(ctx, key, value, expiration); err != nil {
		return err
	}
	_ = lc.memCache.Set(ctx, key, value, expiration)
	return nil
}

func (lc *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	// L1
	if err := lc.memCache.Get(ctx, key, dest); err == nil {
		return nil
	}

	// L2
	if err := lc.redisCache.Get(ctx, key, dest); err != nil {
		return err
	}

	// Promote to memory for next time
	if data, err := json.Marshal(dest); err == nil {
		var raw json.RawMessage = data
		_ = lc.memCache.Set(ctx, key, raw, 0)
	}
	return nil
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	_ = lc.memCache.Delete(ctx, keys...)
	return lc.redisCache.Delete(ctx, keys...)
}

// Close closes both cache layers.
func (lc *LayeredCache) Close() error {
	_ = lc.memCache.Close()
	return lc.redisCache.Close()
}
