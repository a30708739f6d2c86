// Package ratelimit counts requests per caller inside a fixed window that
// starts with the caller's first request and resets once it has elapsed.
//
// Counters live in a Store. MemoryStore keeps them in process, RedisStore
// shares them between instances.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrStoreUnavailable wraps failures of the backing Store.
var ErrStoreUnavailable = errors.New("rate limit store unavailable")

// Window is the state of one caller's counter after a hit.
type Window struct {
	Count   int
	Start   time.Time
	ResetAt time.Time
}

// Store records hits per key.
type Store interface {
	// Hit counts one request for key and returns the window it fell into.
	// A window that has fully elapsed is replaced by a fresh one.
	Hit(ctx context.Context, key string, window time.Duration) (Window, error)
}

// Clock returns the current time.
type Clock func() time.Time

// Decision is the outcome of Limiter.Allow.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the time left until the window resets, rounded up to whole seconds.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	left := d.ResetAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return time.Duration(math.Ceil(left.Seconds())) * time.Second
}

// Limiter allows at most Max requests per key in each Window.
type Limiter struct {
	store  Store
	max    int
	window time.Duration
}

// New creates a limiter over store.
func New(store Store, max int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		max:    max,
		window: window,
	}
}

// Max returns the ceiling per window.
func (l *Limiter) Max() int { return l.max }

// Window returns the window length.
func (l *Limiter) Window() time.Duration { return l.window }

// Allow counts a request for key. When the store fails the request is
// allowed and the error is returned for logging.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	w, err := l.store.Hit(ctx, key, l.window)
	if err != nil {
		return Decision{Allowed: true, Limit: l.max, Remaining: l.max}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	remaining := l.max - w.Count
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   w.Count <= l.max,
		Limit:     l.max,
		Remaining: remaining,
		ResetAt:   w.ResetAt,
	}, nil
}
