package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginAttempts counts failed logins per key in Redis so that every API
// instance shares the same window.
type LoginAttempts struct {
	redis  *RedisClient
	max    int
	window time.Duration
}

// NewLoginAttempts creates a Redis-backed failed-login counter.
func NewLoginAttempts(redis *RedisClient, max int, window time.Duration) *LoginAttempts {
	return &LoginAttempts{redis: redis, max: max, window: window}
}

func (l *LoginAttempts) key(id string) string {
	return fmt.Sprintf("login:fail:%s", id)
}

// Blocked reports whether id has reached the failure limit in the current window.
func (l *LoginAttempts) Blocked(ctx context.Context, id string) (bool, error) {
	raw, err := l.redis.Get(ctx, l.key(id))
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return false, fmt.Errorf("corrupt attempt counter: %w", err)
	}
	return n >= l.max, nil
}

// Fail records one failed attempt.
func (l *LoginAttempts) Fail(ctx context.Context, id string) error {
	_, err := l.redis.Incr(ctx, l.key(id), l.window)
	return err
}

// Reset clears the counter after a successful login.
func (l *LoginAttempts) Reset(ctx context.Context, id string) error {
	return l.redis.Delete(ctx, l.key(id))
}
