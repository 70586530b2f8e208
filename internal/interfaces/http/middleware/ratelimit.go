package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marketplace/backend/internal/interfaces/http/dto"
)

// RateLimiter counts requests per key in fixed windows, in memory. Good
// enough for a single instance; a shared deployment would move this to
// Redis.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
}

type window struct {
	count     int
	startedAt time.Time
}

// NewRateLimiter allows up to limit requests per key within each period.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
	}
	go rl.sweep()
	return rl
}

// sweep drops keys whose window has long expired so the map does not
// grow without bound.
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.period * 2)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-2 * rl.period)
		rl.mu.Lock()
		for key, w := range rl.windows {
			if w.startedAt.Before(cutoff) {
				delete(rl.windows, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow records one request for key and reports whether it fits the
// current window.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.startedAt) >= rl.period {
		rl.windows[key] = &window{count: 1, startedAt: now}
		return true
	}
	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

// Remaining reports how many requests key has left in its window.
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || time.Since(w.startedAt) >= rl.period {
		return rl.limit
	}
	return rl.limit - w.count
}

// RateLimit limits requests per client IP.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return RateLimitByKey(limiter, func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// RateLimitByKey limits requests grouped by keyFunc. Rejected requests
// get a 429 with the standard error envelope; accepted ones carry the
// X-RateLimit headers.
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFunc(c)
		if !limiter.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(
				dto.ErrCodeRateLimited,
				"Too many requests. Please try again later.",
			))
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Next()
	}
}
