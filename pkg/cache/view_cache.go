package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewCacheTTL bounds how long a projected view may be served without a
// projector refreshing it.
const ViewCacheTTL = 24 * time.Hour

// ViewCache stores read-model documents of type T as JSON strings.
// Key format: "{prefix}:{id}". Projectors write it; queries read through it.
type ViewCache[T any] struct {
	client *RedisClient
	prefix string
	ttl    time.Duration
}

// NewViewCache creates a cache for one view model type.
func NewViewCache[T any](r *RedisClient, prefix string) *ViewCache[T] {
	return &ViewCache[T]{client: r, prefix: prefix, ttl: ViewCacheTTL}
}

// Get returns redis.Nil when the key does not exist or has expired.
func (c *ViewCache[T]) Get(ctx context.Context, id string) (*T, error) {
	raw, err := c.client.Client().Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("cache decode %s: %w", c.key(id), err)
	}
	return &v, nil
}

// Set writes v with the cache TTL.
func (c *ViewCache[T]) Set(ctx context.Context, id string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", c.key(id), err)
	}
	if err := c.client.Client().Set(ctx, c.key(id), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached view.
func (c *ViewCache[T]) Delete(ctx context.Context, id string) error {
	if err := c.client.Client().Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *ViewCache[T]) key(id string) string {
	return fmt.Sprintf("%s:%s", c.prefix, id)
}
