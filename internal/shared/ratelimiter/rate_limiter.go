// Package ratelimiter limits how often a key may perform an operation in a fixed window.
package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// Limiter decides whether one more operation for key is allowed in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// window tracks the count for one key.
type window struct {
	count     int
	lastReset time.Time
}

// RateLimiter is an in-process fixed-window limiter keyed by caller.
type RateLimiter struct {
	limit    int           // requests allowed per interval
	interval time.Duration // window length

	mu        sync.Mutex
	windows   map[string]*window
	lastSweep time.Time
	now       func() time.Time
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter creates a RateLimiter allowing limit operations per interval for each key.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
		now:      time.Now,
	}
}

// Allow counts one operation for key and reports whether it is within the limit.
func (rl *RateLimiter) Allow(_ context.Context, key string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	// reset the count once the interval has passed
	if !ok || now.Sub(w.lastReset) >= rl.interval {
		w = &window{lastReset: now}
		rl.windows[key] = w
		// sweep at most once per interval
		if now.Sub(rl.lastSweep) >= rl.interval {
			rl.evictExpired(now)
			rl.lastSweep = now
		}
	}

	w.count++
	return w.count <= rl.limit, nil
}

// evictExpired drops windows that have already ended. Callers hold mu.
func (rl *RateLimiter) evictExpired(now time.Time) {
	for k, w := range rl.windows {
		if now.Sub(w.lastReset) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}
