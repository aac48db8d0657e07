package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrExpireScript increments the counter, starts its window on the first
// hit and returns {count, pttl_ms}.
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`)

// RedisLimiter is a fixed-window limiter shared by every instance using the same Redis.
type RedisLimiter struct {
	rdb      redis.Scripter
	limit    int
	interval time.Duration
	prefix   string
}

var _ Limiter = (*RedisLimiter)(nil)

// NewRedisLimiter allows limit hits per key every interval. Keys are stored under prefix.
func NewRedisLimiter(rdb redis.Scripter, limit int, interval time.Duration, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "rl"
	}
	return &RedisLimiter{rdb: rdb, limit: limit, interval: interval, prefix: prefix}
}

func (l *RedisLimiter) key(k string) string {
	return l.prefix + ":" + k
}

// Allow counts a hit for key atomically in Redis.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	res, err := incrExpireScript.Run(ctx, l.rdb, []string{l.key(key)}, l.interval.Milliseconds()).Result()
	if err != nil {
		return Result{}, fmt.Errorf("rate limit script: %w", err)
	}

	vals, ok := res.([]interface{})
	if !ok || len(vals) != 2 {
		return Result{}, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}
	count, ok1 := vals[0].(int64)
	pttl, ok2 := vals[1].(int64)
	if !ok1 || !ok2 {
		return Result{}, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}

	return newResult(l.limit, count, time.Duration(pttl)*time.Millisecond), nil
}
