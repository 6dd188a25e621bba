package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/ecolux_api/internal/utils"
)

// AttemptStore tracks failed login attempts per client key.
type AttemptStore interface {
	Blocked(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// InvalidAuthRateLimiter is the in-process AttemptStore used when Redis is
// not configured.
type InvalidAuthRateLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptInfo
	max      int
	window   time.Duration
	now      func() time.Time
}

type attemptInfo struct {
	count   int
	firstAt time.Time
}

// NewInvalidAuthRateLimiter allows max failures per window and key. The
// cleanup loop stops when ctx is cancelled.
func NewInvalidAuthRateLimiter(ctx context.Context, max int, window time.Duration) *InvalidAuthRateLimiter {
	rl := &InvalidAuthRateLimiter{
		attempts: make(map[string]*attemptInfo),
		max:      max,
		window:   window,
		now:      time.Now,
	}
	go rl.cleanup(ctx)
	return rl
}

// Blocked reports whether key has used up its failures in the current window.
func (r *InvalidAuthRateLimiter) Blocked(_ context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, ok := r.attempts[key]
	if !ok || r.now().Sub(info.firstAt) > r.window {
		return false, nil
	}
	return info.count >= r.max, nil
}

// Fail records a failed attempt for key.
func (r *InvalidAuthRateLimiter) Fail(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	info, ok := r.attempts[key]
	if !ok || now.Sub(info.firstAt) > r.window {
		r.attempts[key] = &attemptInfo{count: 1, firstAt: now}
		return nil
	}
	info.count++
	return nil
}

// Reset forgets key.
func (r *InvalidAuthRateLimiter) Reset(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.attempts, key)
	return nil
}

func (r *InvalidAuthRateLimiter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.mu.Lock()
			now := r.now()
			for key, info := range r.attempts {
				if now.Sub(info.firstAt) > r.window {
					delete(r.attempts, key)
				}
			}
			r.mu.Unlock()
		}
	}
}

// LoginRateLimit rejects clients with too many failed logins. A 401 from the
// wrapped handler counts as a failure and a 200 clears the counter. Store
// errors fail open.
func LoginRateLimit(store AttemptStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ip := c.ClientIP()

		blocked, err := store.Blocked(ctx, ip)
		if err != nil {
			log.Warn().Err(err).Str("ip", ip).Msg("login limiter unavailable")
		}
		if blocked {
			utils.Error(c, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Too many failed login attempts")
			c.Abort()
			return
		}

		c.Next()

		switch c.Writer.Status() {
		case http.StatusUnauthorized:
			err = store.Fail(ctx, ip)
		case http.StatusOK:
			err = store.Reset(ctx, ip)
		default:
			err = nil
		}
		if err != nil {
			log.Warn().Err(err).Str("ip", ip).Msg("login limiter update failed")
		}
	}
}
