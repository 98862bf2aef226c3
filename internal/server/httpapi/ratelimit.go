package httpapi

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/daterapp/auth/internal/logging"
)

// RateLimiter bounds how often a client may hit the auth endpoints.
type RateLimiter interface {
	// Allow reports whether the client identified by key may proceed.
	Allow(ctx context.Context, key string) bool
	Close()
}

// NoopLimiter allows everything. Used when no Redis address is configured.
type NoopLimiter struct{}

func (NoopLimiter) Allow(context.Context, string) bool { return true }
func (NoopLimiter) Close()                             {}

// redisRateLimiter counts attempts per key in a fixed one-minute window
// using INCR + EXPIRE. Redis errors fail open: an unreachable limiter must
// not lock accounts out.
type redisRateLimiter struct {
	client  *redis.Client
	logger  logging.Logger
	prefix  string
	limit   int
	window  time.Duration
	timeout time.Duration
}

// NewRedisRateLimiter constructs a Redis-backed limiter allowing limit
// attempts per key per minute. The connection is verified with a ping.
func NewRedisRateLimiter(addr, password string, db int, limit int, logger logging.Logger) (RateLimiter, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &redisRateLimiter{
		client:  client,
		logger:  logger.With("module", "rate_limiter"),
		prefix:  "auth:ratelimit:",
		limit:   limit,
		window:  time.Minute,
		timeout: 250 * time.Millisecond,
	}, nil
}

func (rl *redisRateLimiter) Allow(ctx context.Context, key string) bool {
	if rl.limit <= 0 {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, rl.timeout)
	defer cancel()

	redisKey := rl.prefix + key

	counter, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		rl.logger.Error(ctx, "redis incr failed", "error", err)
		return true
	}
	if counter == 1 {
		if err := rl.client.Expire(ctx, redisKey, rl.window).Err(); err != nil {
			rl.logger.Error(ctx, "redis expire failed", "error", err)
		}
	}

	return int(counter) <= rl.limit
}

func (rl *redisRateLimiter) Close() {
	_ = rl.client.Close()
}
