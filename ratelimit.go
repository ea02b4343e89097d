package llmretry

import (
	"context"
	"sync"
	"time"
)

// SlidingWindowLimiter admits at most maxCalls calls in any rolling window
// of the configured duration. It keeps one timestamp per admitted call and
// prunes entries older than the window lazily on each admission check, so
// the log never holds more than maxCalls entries after pruning.
//
// Pattern: Rate Limiter — sliding window log; the prune-check-append
// sequence runs as one atomic unit under a mutex, making the limiter safe
// to share across goroutines.
type SlidingWindowLimiter struct {
	maxCalls int
	window   time.Duration
	clock    Clock
	hooks    *Hooks

	mu  sync.Mutex
	log []time.Time // admission timestamps, oldest first
}

// NewSlidingWindowLimiter creates a limiter admitting maxCalls per window.
func NewSlidingWindowLimiter(maxCalls int, window time.Duration, clock Clock, hooks *Hooks) *SlidingWindowLimiter {
	if clock == nil {
		clock = RealClock{}
	}
	if hooks == nil {
		hooks = &Hooks{}
	}

	return &SlidingWindowLimiter{
		maxCalls: maxCalls,
		window:   window,
		clock:    clock,
		hooks:    hooks,
	}
}

// prune drops timestamps that have aged out of the window.
// Caller must hold mu.
func (l *SlidingWindowLimiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)

	i := 0
	for i < len(l.log) && !l.log[i].After(cutoff) {
		i++
	}

	if i > 0 {
		l.log = append(l.log[:0], l.log[i:]...)
	}
}

// TryAcquire attempts a non-blocking admission. On success it records the
// admission timestamp and returns true immediately. On failure it returns
// false and the duration until the oldest retained admission leaves the
// window, which is the earliest point at which a slot can open.
func (l *SlidingWindowLimiter) TryAcquire() (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	l.prune(now)

	if len(l.log) < l.maxCalls {
		l.log = append(l.log, now)
		return true, 0
	}

	wait := l.window - now.Sub(l.log[0])
	if wait < 0 {
		wait = 0
	}

	return false, wait
}

// Acquire blocks until the call is admitted or ctx is cancelled. The wait
// loops rather than sleeping once and proceeding: another goroutine may
// have taken the freed slot while this one slept, so every wakeup
// re-evaluates the window.
func (l *SlidingWindowLimiter) Acquire(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ok, wait := l.TryAcquire()
		if ok {
			return nil
		}

		l.hooks.emitRateLimitWait(wait)

		timer := l.clock.NewTimer(wait)
		select {
		case <-timer.C():
			// Slot may have opened; loop and re-check.
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// Len returns the number of admissions currently inside the window.
func (l *SlidingWindowLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune(l.clock.Now())

	return len(l.log)
}
