package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis caches provider responses in a shared Redis instance so several
// tool hosts can reuse each other's fetches.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(redisURL, redisPassword string, ttl time.Duration, logger *slog.Logger) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	if redisPassword != "" {
		opt.Password = redisPassword
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Redis{
		client: client,
		ttl:    ttl,
		prefix: "financetools:resp:",
		logger: logger.With("component", "response_cache"),
	}, nil
}

// Get fetches a cached body. A missing key is not an error.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis GET failed: %w", err)
	}

	r.logger.Debug("cache_hit", "key", key, "bytes", len(body))
	return body, true, nil
}

// Set stores a body with the configured TTL.
func (r *Redis) Set(ctx context.Context, key string, body []byte) error {
	if r.ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, r.prefix+key, body, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis SET failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
