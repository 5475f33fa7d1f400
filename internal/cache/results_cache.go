package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResultsCache holds serialized aggregation output per session. The engine
// itself stays pure; this is the explicit, invalidatable layer in front of it.
// A nil *ResultsCache (or nil client) is a no-op, so the service runs without
// Redis and tests need no server.
type ResultsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultsCache connects to Redis and verifies the connection.
func NewResultsCache(redisURL, password string, ttl time.Duration) (*ResultsCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &ResultsCache{client: rdb, ttl: ttl}, nil
}

func resultsKey(sessionID, view string) string {
	return fmt.Sprintf("results:session:%s:%s", sessionID, view)
}

// Get unmarshals a cached view into dest. The second return is false on miss
// (or when caching is disabled).
func (c *ResultsCache) Get(ctx context.Context, sessionID, view string, dest any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, resultsKey(sessionID, view)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// A stale or corrupt entry is a miss, not a failure.
		return false, nil
	}
	return true, nil
}

// Set stores a view with the configured TTL.
func (c *ResultsCache) Set(ctx context.Context, sessionID, view string, value any) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, resultsKey(sessionID, view), raw, c.ttl).Err()
}

// Invalidate drops every cached view for a session. Called by all write paths
// (rating, reveal, player) so readers recompute from a fresh snapshot.
func (c *ResultsCache) Invalidate(ctx context.Context, sessionID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	pattern := fmt.Sprintf("results:session:%s:*", sessionID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Close releases the underlying client.
func (c *ResultsCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
