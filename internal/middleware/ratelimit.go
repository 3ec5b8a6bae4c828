package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// InMemoryRateLimiter is a sliding-window request limiter keyed by client IP.
// Good enough for a single-instance deployment; entries for idle keys are
// swept once a minute.
type InMemoryRateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
}

func NewInMemoryRateLimiter(limit int, window time.Duration) *InMemoryRateLimiter {
	r := &InMemoryRateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}
	go r.sweep()
	return r
}

// prune drops timestamps older than cutoff, in place.
func prune(times []time.Time, cutoff time.Time) []time.Time {
	kept := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

func (r *InMemoryRateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	times := prune(r.requests[key], now.Add(-r.window))
	if len(times) >= r.limit {
		r.requests[key] = times
		return false
	}
	r.requests[key] = append(times, now)
	return true
}

func (r *InMemoryRateLimiter) sweep() {
	tick := time.NewTicker(time.Minute)
	for range tick.C {
		r.mu.Lock()
		cutoff := time.Now().Add(-r.window)
		for k, times := range r.requests {
			if kept := prune(times, cutoff); len(kept) == 0 {
				delete(r.requests, k)
			} else {
				r.requests[k] = kept
			}
		}
		r.mu.Unlock()
	}
}

// RateLimit limits by client IP using the configured per-window budget.
func RateLimit(limiter *InMemoryRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
