package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/care-moments/internal/infra/config"
)

const (
	bucketIdleTTL = 5 * time.Minute
	sweepInterval = time.Minute
)

// rateLimitMiddleware applies a per-client token bucket to the API group.
func rateLimitMiddleware(cfg config.RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := newTokenBucketLimiter(cfg.RequestsPerMinute, cfg.Burst, time.Now)
	return func(c *gin.Context) {
		client := c.ClientIP()
		ok, wait := limiter.take(client)
		if ok {
			c.Next()
			return
		}
		logger.Warn("rate limit exceeded", "client_ip", client, "path", c.Request.URL.Path, "retry_after", wait)
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		abortWithError(c, NewHTTPError(http.StatusTooManyRequests, "rate_limit_exceeded", "too many requests", nil))
	}
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// tokenBucketLimiter refills every key continuously up to capacity.
type tokenBucketLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	perSecond float64
	capacity  float64
	lastSweep time.Time
	now       func() time.Time
}

func newTokenBucketLimiter(perMinute, burst int, now func() time.Time) *tokenBucketLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &tokenBucketLimiter{
		buckets:   make(map[string]*bucket),
		perSecond: float64(perMinute) / 60,
		capacity:  float64(burst),
		lastSweep: now(),
		now:       now,
	}
}

// take spends one token for key. When none is left it reports how long until one is.
func (l *tokenBucketLimiter) take(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= sweepInterval {
		l.sweepLocked(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, lastSeen: now}
		l.buckets[key] = b
	} else if elapsed := now.Sub(b.lastSeen).Seconds(); elapsed > 0 {
		b.tokens = math.Min(l.capacity, b.tokens+elapsed*l.perSecond)
		b.lastSeen = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	missing := 1 - b.tokens
	return false, time.Duration(missing / l.perSecond * float64(time.Second))
}

func (l *tokenBucketLimiter) sweepLocked(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > bucketIdleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}
