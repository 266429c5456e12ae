package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"fitcoach_backend/pkg/apperrors"
)

// RateLimiter is a fixed-window per-client request counter. Counters live
// in process memory behind a mutex; there is no shared cache in this
// deployment, so a multi-instance setup rate-limits per instance.
type RateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	clients map[string]*windowCounter
}

type windowCounter struct {
	count       int
	windowStart time.Time
}

func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	return &RateLimiter{
		window:  window,
		max:     max,
		clients: make(map[string]*windowCounter),
	}
}

// Allow counts a request for the key and reports whether it is within the
// current window's budget. Stale windows reset on first touch.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	counter, ok := rl.clients[key]
	if !ok || now.Sub(counter.windowStart) >= rl.window {
		// Opportunistic cleanup keeps the map from growing unboundedly
		// under many distinct client IPs.
		if len(rl.clients) > 10000 {
			for k, c := range rl.clients {
				if now.Sub(c.windowStart) >= rl.window {
					delete(rl.clients, k)
				}
			}
		}
		rl.clients[key] = &windowCounter{count: 1, windowStart: now}
		return true
	}

	counter.count++
	return counter.count <= rl.max
}

// RateLimitMiddleware rejects requests over the per-IP budget with 429.
func RateLimitMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			apperrors.HandleError(c, apperrors.New(
				apperrors.CodeTooManyRequests,
				"ratelimit",
				"Too many requests, please try again later",
				http.StatusTooManyRequests,
			))
			c.Abort()
			return
		}
		c.Next()
	}
}
