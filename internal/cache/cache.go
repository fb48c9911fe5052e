package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/foodgramapp/foodgram-backend/internal/logger"
)

// Cache is a thin read-through cache over redis. A nil *Cache (or one built
// without an address) disables caching without branching at call sites.
type Cache struct {
	client *redis.Client
	log    *logger.Logger
}

// New returns nil when addr is empty, which callers treat as cache-off.
func New(addr string, log *logger.Logger) *Cache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &Cache{client: client, log: log.With("component", "Cache")}
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *Cache) Set(ctx context.Context, key, val string, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, val, ttl).Err(); err != nil {
		c.log.Warn("Cache set failed", "key", key, "error", err)
	}
}

func (c *Cache) Delete(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Warn("Cache delete failed", "key", key, "error", err)
	}
}
