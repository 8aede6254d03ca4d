// Package middleware provides HTTP middleware for kindred.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// maxBuckets caps tracked IPs; the least recently seen IP is evicted first.
	maxBuckets = 100_000
	// bucketIdleTTL drops buckets of clients that have gone quiet.
	bucketIdleTTL = 10 * time.Minute
)

// RateLimiter implements a token bucket rate limiter per client IP.
type RateLimiter struct {
	buckets *expirable.LRU[string, *bucket]
	mu      sync.Mutex
	rate    float64
	burst   float64
}

// bucket represents a per-IP token bucket for rate limiting.
type bucket struct {
	tokens   float64
	lastFill time.Time
}

func (b *bucket) allow(now time.Time, ratePerSec, burst float64) bool {
	b.tokens = min(burst, b.tokens+now.Sub(b.lastFill).Seconds()*ratePerSec)
	b.lastFill = now

	if b.tokens >= 1 {
		b.tokens--

		return true
	}

	return false
}

// NewRateLimiter creates a RateLimiter with the given requests per second and burst size.
func NewRateLimiter(ratePerSec float64, burst int) *RateLimiter {
	return &RateLimiter{
		buckets: expirable.NewLRU[string, *bucket](maxBuckets, nil, bucketIdleTTL),
		rate:    ratePerSec,
		burst:   float64(burst),
	}
}

// Handler returns Gin middleware that applies rate limiting per client IP.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// c.ClientIP() is safe from X-Forwarded-For spoofing because
		// SetTrustedProxies(nil) in router.go disables proxy header trust.
		ip := c.ClientIP()
		now := time.Now()

		rl.mu.Lock()

		b, ok := rl.buckets.Get(ip)
		if !ok {
			b = &bucket{tokens: rl.burst, lastFill: now}
		}

		allowed := b.allow(now, rl.rate, rl.burst)
		// Re-adding refreshes the idle TTL.
		rl.buckets.Add(ip, b)

		rl.mu.Unlock()

		if !allowed {
			respondError(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")

			return
		}

		c.Next()
	}
}
