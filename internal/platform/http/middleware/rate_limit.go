package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskhive/internal/shared/ratelimiter"
)

// KeyFunc builds a rate-limit key from the request.
type KeyFunc func(c *gin.Context) string

// KeyByIPAndPath limits each client IP per route.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		return "path:" + path + ":ip:" + ip
	}
}

// RateLimit rejects requests over the limiter's quota with 429 and sets the
// X-RateLimit-* headers. Limiter errors let the request through.
func RateLimit(limiter ratelimiter.Limiter, keyFn KeyFunc) gin.HandlerFunc {
	if limiter == nil || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		res, err := limiter.Allow(c.Request.Context(), keyFn(c))
		if err != nil {
			slog.Warn("rate limiter unavailable", "error", err, "request_id", c.GetString(ContextRequestID))
			c.Next()
			return
		}

		resetSec := int(math.Ceil(res.ResetIn.Seconds()))
		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(resetSec))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
