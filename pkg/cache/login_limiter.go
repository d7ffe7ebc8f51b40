package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginAttemptsPrefix = "login:failures"

// LoginLimiter counts failed logins per username in Redis. A username is
// blocked once it reaches max failures inside window; the counter expires
// window after the first failure.
type LoginLimiter struct {
	client *RedisClient
	max    int
	window time.Duration
}

// NewLoginLimiter returns a LoginLimiter allowing max failures per window.
func NewLoginLimiter(r *RedisClient, max int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: r, max: max, window: window}
}

// Blocked reports whether username has exhausted its attempts.
func (l *LoginLimiter) Blocked(ctx context.Context, username string) (bool, error) {
	n, err := l.client.Client().Get(ctx, l.key(username)).Int()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("login limiter get: %w", err)
	}
	return n >= l.max, nil
}

// Fail records one failed attempt.
func (l *LoginLimiter) Fail(ctx context.Context, username string) error {
	key := l.key(username)
	_, err := l.client.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("login limiter incr: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username string) error {
	if err := l.client.Client().Del(ctx, l.key(username)).Err(); err != nil {
		return fmt.Errorf("login limiter reset: %w", err)
	}
	return nil
}

// key builds "login:failures:{username}"; usernames are case-insensitive.
func (l *LoginLimiter) key(username string) string {
	return fmt.Sprintf("%s:%s", loginAttemptsPrefix, strings.ToLower(username))
}
