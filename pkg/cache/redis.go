package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements Service using Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// RedisOption configures RedisCache.
type RedisOption func(*redisConfig)

type redisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
	Prefix   string
}

// WithRedisAddr sets Redis host and port.
func WithRedisAddr(host string, port int) RedisOption {
	return func(c *redisConfig) {
		c.Host = host
		c.Port = port
	}
}

// WithRedisAuth sets password and database number.
func WithRedisAuth(password string, db int) RedisOption {
	return func(c *redisConfig) {
		c.Password = password
		c.DB = db
	}
}

// WithRedisPrefix sets key prefix.
func WithRedisPrefix(prefix string) RedisOption {
	return func(c *redisConfig) {
		c.Prefix = prefix
	}
}

// NewRedisCache creates a Redis cache client.
func NewRedisCache(opts ...RedisOption) (*RedisCache, error) {
	cfg := &redisConfig{
		Host:     "localhost",
		Port:     6379,
		PoolSize: 10,
		Prefix:   "quotepulse",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{
		client: client,
		prefix: cfg.Prefix,
	}, nil
}

func (c *RedisCache) wrapKey(key string) string {
	return c.prefix + ":" + key
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.wrapKey(key), data, expiration).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, c.wrapKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	wrapped := make([]string, len(keys))
	for i, k := range keys {
		wrapped[i] = c.wrapKey(k)
	}
	return c.client.Del(ctx, wrapped...).Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
