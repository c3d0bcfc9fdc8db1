package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Service defines cache operations. Values are stored JSON-encoded so the
// same interface works for both memory and Redis backends.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Key builds a namespaced cache key.
func Key(prefix string, parts ...string) string {
	key := prefix
	for _, p := range parts {
		key = fmt.Sprintf("%s:%s", key, p)
	}
	return key
}
