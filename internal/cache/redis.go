// Package cache provides the Redis access layer backing rate limiting.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options tunes the Redis client pool.
type Options struct {
	PoolSize     int
	MinIdleConns int
}

// DefaultOptions returns the pool bounds used when none are configured.
func DefaultOptions() Options {
	return Options{PoolSize: 10, MinIdleConns: 2}
}

// Cache wraps a Redis client. It is safe for concurrent use.
type Cache struct {
	client *redis.Client
}

// New parses redisURL, applies opts, and verifies the server answers.
func New(ctx context.Context, redisURL string, opts Options) (*Cache, error) {
	clientOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	if opts.PoolSize > 0 {
		clientOpts.PoolSize = opts.PoolSize
	}
	clientOpts.MinIdleConns = opts.MinIdleConns
	clientOpts.PoolTimeout = 4 * time.Second
	clientOpts.ConnMaxIdleTime = 5 * time.Minute

	return NewFromClient(ctx, redis.NewClient(clientOpts))
}

// NewFromClient wraps client after a successful ping. The client is closed
// when the ping fails.
func NewFromClient(ctx context.Context, client *redis.Client) (*Cache, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Ping reports whether Redis is reachable. It backs the readiness probe.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Client exposes the underlying client to integration tests.
func (c *Cache) Client() *redis.Client {
	return c.client
}
