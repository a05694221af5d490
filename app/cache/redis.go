package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a Redis client for page caching operations
type Cache struct {
	client *redis.Client
}

// NewCache creates a new Redis page cache client
func NewCache(addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// GetPage retrieves a cached page. The second return value reports a hit;
// Redis handles expiry, so a present key is always fresh.
func (c *Cache) GetPage(ctx context.Context, key string) (*Page, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get key %s: %w", key, err)
	}

	var page Page
	if err := json.Unmarshal([]byte(val), &page); err != nil {
		// Invalid data format, delete and treat as a miss
		c.client.Del(ctx, key)
		return nil, false, nil
	}

	return &page, true, nil
}

// SetPage stores a page with the freshness window as its TTL
func (c *Cache) SetPage(ctx context.Context, key string, page *Page, ttl time.Duration) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal page for key %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	return nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}

// PageKey generates a consistent cache key for a normalized request URL
func PageKey(requestURL string) string {
	hash := sha256.Sum256([]byte(requestURL))
	return fmt.Sprintf("page:%x", hash[:8]) // Use first 8 bytes for shorter keys
}
