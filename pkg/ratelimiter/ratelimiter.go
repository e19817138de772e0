// Package ratelimiter counts requests per client in fixed Redis windows.
package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

type Limiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

// New returns a limiter allowing limit hits per window. A nil client yields a
// limiter that allows everything.
func New(rdb *redis.Client, limit int64, window time.Duration) *Limiter {
	return &Limiter{rdb: rdb, limit: limit, window: window}
}

func Key(subject, scope string) string {
	return fmt.Sprintf("rate_limit:ip:%s:%s", subject, scope)
}

// Enabled reports whether hits are actually counted.
func (l *Limiter) Enabled() bool {
	return l != nil && l.rdb != nil && l.limit > 0
}

// Allow counts one hit for subject in scope.
func (l *Limiter) Allow(ctx context.Context, subject, scope string) (Decision, error) {
	if !l.Enabled() {
		return Decision{Allowed: true}, nil
	}

	key := Key(subject, scope)
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return Decision{}, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	if count <= l.limit {
		return Decision{Allowed: true, Remaining: l.limit - count}, nil
	}

	ttl, err := l.rdb.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = l.window
	}
	return Decision{Allowed: false, RetryAfter: ttl}, nil
}

// Reset clears the window of subject in scope.
func (l *Limiter) Reset(ctx context.Context, subject, scope string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Del(ctx, Key(subject, scope)).Err()
}
