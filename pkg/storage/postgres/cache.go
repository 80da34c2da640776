package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is an optional Redis read cache for get-by-id lookups. Misses and
// Redis failures fall through to the database; writes invalidate.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// CacheConfig holds Redis cache configuration
type CacheConfig struct {
	URL string
	TTL time.Duration
}

// NewCache connects to Redis at cfg.URL and verifies with a ping
func NewCache(cfg CacheConfig) (*Cache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &Cache{client: client, ttl: ttl}, nil
}

// NewCacheWithClient wraps an existing client, used by tests with miniredis
func NewCacheWithClient(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

// Get loads a cached row into dest. ok is false on a miss or any Redis error.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (ok bool, err error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		// drop corrupt entries
		c.client.Del(ctx, key)
		return false, fmt.Errorf("failed to unmarshal cached row: %w", err)
	}

	return true, nil
}

// Set stores a row under key; errors are ignored by callers since the cache
// is best-effort
func (c *Cache) Set(ctx context.Context, key string, val interface{}) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("failed to marshal row: %w", err)
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Del invalidates a cached row
func (c *Cache) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Ping verifies the Redis connection, used by readiness checks
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}

func seriesKey(id int64) string  { return fmt.Sprintf("series:%d", id) }
func seasonKey(id int64) string  { return fmt.Sprintf("season:%d", id) }
func episodeKey(id int64) string { return fmt.Sprintf("episode:%d", id) }
