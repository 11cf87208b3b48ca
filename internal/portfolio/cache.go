package portfolio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when no cached portfolio exists for a username
var ErrCacheMiss = errors.New("portfolio not in cache")

// RedisCache stores rendered portfolio payloads in Redis with a TTL
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// cacheKey generates the Redis key for a username's portfolio
func cacheKey(username string) string {
	return fmt.Sprintf("portfolio:%s", username)
}

// Get returns the cached payload or ErrCacheMiss
func (c *RedisCache) Get(ctx context.Context, username string) ([]byte, error) {
	payload, err := c.client.Get(ctx, cacheKey(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio cache: %w", err)
	}
	return payload, nil
}

// Set stores the payload with the configured TTL
func (c *RedisCache) Set(ctx context.Context, username string, payload []byte) error {
	if err := c.client.Set(ctx, cacheKey(username), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write portfolio cache: %w", err)
	}
	return nil
}

// Del removes the cached payload
func (c *RedisCache) Del(ctx context.Context, username string) error {
	if err := c.client.Del(ctx, cacheKey(username)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate portfolio cache: %w", err)
	}
	return nil
}
