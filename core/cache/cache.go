package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adityamakwana707/globetrotter-sub000/core/config"
	"github.com/adityamakwana707/globetrotter-sub000/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin JSON layer over redis used for read-through caches
// (suggestion fetches) and short-lived lookups.
type Cache struct {
	client *redis.Client
}

// ErrCacheMiss is returned by GetJSON when the key is absent.
var ErrCacheMiss = redis.Nil

// Init connects to redis. The cache is optional infrastructure: a failed
// ping is reported but the returned client still works once redis is up.
func Init(cfg config.RedisConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Cache:Init:PingFailed", "addr", cfg.Addr, "error", err)
	} else {
		logger.Info("Cache initialized", "addr", cfg.Addr, "db", cfg.DB)
	}

	return &Cache{client: client}, nil
}

// SetJSON marshals value and stores it under key with the given TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", key, err)
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// GetJSON loads and unmarshals the value stored under key into dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// Delete removes a key; missing keys are not an error.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

// Client exposes the underlying redis client (asynq shares the same address).
func (c *Cache) Client() *redis.Client {
	return c.client
}

// Close releases the redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}
