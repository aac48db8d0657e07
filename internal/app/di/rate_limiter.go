// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"taskhive/internal/shared/ratelimiter"
)

// authRateLimitPrefix namespaces the auth limiter's Redis keys.
const authRateLimitPrefix = "rl:auth"

// NewRateLimiter returns a Redis-backed limiter when rdb is available and an
// in-process one otherwise.
func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) ratelimiter.Limiter {
	if rdb != nil {
		return ratelimiter.NewRedisLimiter(rdb, limit, window, authRateLimitPrefix)
	}
	return ratelimiter.NewMemoryLimiter(limit, window)
}
