package httputil

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	rateLimiterCleanupInterval = 5 * time.Minute
	rateLimiterIdleTimeout     = time.Hour
)

// RateLimitConfig configures a keyed token bucket rate limiter.
type RateLimitConfig struct {
	RequestsPerSec float64
	Burst          int

	// Key selects the bucket a request is charged to (client IP, business id).
	Key func(c *gin.Context) string

	// Message is returned to callers that exceed the limit.
	Message string
}

// rateLimiterStore holds per-key rate limiters with automatic cleanup.
type rateLimiterStore struct {
	limiters sync.Map // map[string]*rateLimiterEntry
	rps      float64
	burst    int
}

// rateLimiterEntry holds a rate limiter and last access time for cleanup.
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// RateLimitMiddleware enforces per-key rate limiting using golang.org/x/time/rate.
// Each key gets an independent token bucket. Buckets idle for an hour are evicted
// by a background goroutine that stops when ctx is done.
//
// Returns 429 Too Many Requests with a Retry-After header when the bucket is empty.
func RateLimitMiddleware(ctx context.Context, cfg RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	store := &rateLimiterStore{
		rps:   cfg.RequestsPerSec,
		burst: cfg.Burst,
	}

	go store.cleanupStale(ctx, rateLimiterCleanupInterval)

	return func(c *gin.Context) {
		key := cfg.Key(c)
		limiter := store.getLimiter(key)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(math.Max(1, math.Ceil(reservation.Delay().Seconds())))
			reservation.Cancel()

			if logger != nil {
				logger.Debug("rate limit exceeded",
					slog.String("key", key),
					slog.String("path", c.FullPath()),
					slog.Int("retry_after", retryAfter))
			}

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error:   "rate_limit_exceeded",
				Message: cfg.Message,
			})
			return
		}

		c.Next()
	}
}

// getLimiter retrieves or creates the rate limiter for key.
func (s *rateLimiterStore) getLimiter(key string) *rate.Limiter {
	if val, ok := s.limiters.Load(key); ok {
		entry := val.(*rateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = time.Now()
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &rateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: time.Now(),
	}
	actual, _ := s.limiters.LoadOrStore(key, entry)
	return actual.(*rateLimiterEntry).limiter
}

// cleanupStale removes rate limiters that have not been accessed recently.
func (s *rateLimiterStore) cleanupStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdleSince(time.Now().Add(-rateLimiterIdleTimeout))
		}
	}
}

func (s *rateLimiterStore) evictIdleSince(threshold time.Time) {
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*rateLimiterEntry)
		entry.mu.Lock()
		stale := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if stale {
			s.limiters.Delete(key)
		}
		return true
	})
}

// ClientIPKey charges requests to the caller's IP address.
func ClientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// ParamKey charges requests to the value of a path parameter.
func ParamKey(name string) func(c *gin.Context) string {
	return func(c *gin.Context) string {
		return c.Param(name)
	}
}
