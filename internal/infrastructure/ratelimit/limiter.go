// Package ratelimit provides Redis-backed fixed-window rate limiting for the
// proxy endpoints.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/redis/go-redis/v9"
)

// Limiter enforces a fixed-window request quota per client key.
type Limiter struct {
	client *redis.Client
	logger *logging.ChanneledLogger
}

// NewLimiter creates a rate limiter backed by the given Redis client.
func NewLimiter(client *redis.Client, logger *logging.ChanneledLogger) *Limiter {
	return &Limiter{
		client: client,
		logger: logger,
	}
}

// NewRedisClient creates the shared Redis connection.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Allow consumes one request from the quota for bucket+clientKey. It returns
// false once limit requests landed inside the current window. When Redis is
// unreachable the request is allowed; the proxies must not go dark because
// the limiter did.
func (l *Limiter) Allow(ctx context.Context, bucket, clientKey string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s:%s:%d", bucket, clientKey, time.Now().Unix()/int64(window.Seconds()))

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.System().Warn("Rate limiter unavailable, allowing request", "bucket", bucket, "error", err.Error())
		return true, err
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, window).Err(); err != nil {
			l.logger.System().Warn("Failed to set rate limit window expiry", "bucket", bucket, "error", err.Error())
		}
	}

	if count > int64(limit) {
		l.logger.System().Info("Rate limit exceeded", "bucket", bucket, "clientKey", clientKey, "count", count, "limit", limit)
		return false, nil
	}
	return true, nil
}

// Remaining reports how many requests are left in the current window.
func (l *Limiter) Remaining(ctx context.Context, bucket, clientKey string, limit int, window time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s:%d", bucket, clientKey, time.Now().Unix()/int64(window.Seconds()))

	count, err := l.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return limit, nil
	}
	if err != nil {
		return limit, err
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
