// api/auth/attempts.go
package auth

import (
	"sync"
	"time"
)

type attemptCounter struct {
	count       int
	lastAttempt time.Time
}

// AttemptTracker counts failed authentication attempts per identifier (email
// or IP). Counters live in memory only and are lost on restart. The map is
// mutex-guarded because handlers run on multiple goroutines.
type AttemptTracker struct {
	mu        sync.Mutex
	counters  map[string]attemptCounter
	threshold int
	window    time.Duration
	now       func() time.Time
}

func NewAttemptTracker(threshold int, window time.Duration) *AttemptTracker {
	return &AttemptTracker{
		counters:  make(map[string]attemptCounter),
		threshold: threshold,
		window:    window,
		now:       time.Now,
	}
}

// WithAttemptClock overrides the tracker's time source.
func (t *AttemptTracker) WithAttemptClock(now func() time.Time) *AttemptTracker {
	t.now = now
	return t
}

// RecordFailure bumps the counter for identifier and reports the new count
// plus whether this exact failure crossed the threshold. The counter resets
// to 1 when more than the window has elapsed since the previous attempt.
// lockout is true only at the threshold itself, so the caller emits exactly
// one security event per streak.
func (t *AttemptTracker) RecordFailure(identifier string) (count int, lockout bool) {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	c, ok := t.counters[identifier]
	if !ok || now.Sub(c.lastAttempt) > t.window {
		c = attemptCounter{count: 1, lastAttempt: now}
	} else {
		c.count++
		c.lastAttempt = now
	}
	t.counters[identifier] = c

	return c.count, c.count == t.threshold
}

// Reset clears the counter after a successful authentication.
func (t *AttemptTracker) Reset(identifier string) {
	t.mu.Lock()
	delete(t.counters, identifier)
	t.mu.Unlock()
}
