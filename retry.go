package llmretry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RetryConfig bounds the retry loop. Immutable once a Caller is built;
// MinWait <= MaxWait is validated at construction.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// MinWait is the floor for every inter-attempt delay.
	MinWait time.Duration
	// MaxWait caps the exponential ceiling.
	MaxWait time.Duration
}

// retryAfterHint is implemented by errors carrying a server-provided
// retry-after delay (see driver.ProviderError).
type retryAfterHint interface {
	RetryAfterDelay() (time.Duration, bool)
}

// Retry executes fn up to cfg.MaxAttempts times. A successful attempt
// returns immediately. Errors marked transient (see [Transient]) are
// retried after an exponential full-jitter delay in
// [MinWait, min(MaxWait, MinWait*2^(attempt-1))]; any other error stops
// the loop at once. When the provider supplied a retry-after hint, that
// delay is used instead of the jittered draw, clamped into
// [MinWait, MaxWait] so the delay bounds hold either way. Exhausting all
// attempts wraps the last error in [ErrRetriesExhausted].
//
// Backoff sleeps go through clock and respect ctx cancellation; a
// cancelled sleep surfaces ctx.Err() unretried.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func(context.Context) (T, error), hooks *Hooks, clock Clock, randFloat RandFloat) (T, error) {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	backoff := FullJitterBackoff{Min: cfg.MinWait, Max: cfg.MaxWait}

	var zero T
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		lastErr = err

		// Only explicitly transient failures are worth another attempt.
		if !IsTransient(err) {
			return zero, err
		}

		if attempt == maxAttempts {
			break
		}

		delay := backoff.Delay(attempt, randFloat)

		// A server-provided retry-after overrides the jittered draw but
		// stays within the configured bounds.
		var hint retryAfterHint
		if errors.As(err, &hint) {
			if d, ok := hint.RetryAfterDelay(); ok {
				delay = clampDelay(d, cfg.MinWait, cfg.MaxWait)
			}
		}

		hooks.emitRetry(attempt, delay, err)

		timer := clock.NewTimer(delay)
		select {
		case <-timer.C():
			// Timer fired, proceed to next attempt.
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		}
	}

	exhausted := fmt.Errorf("%w: %w", ErrRetriesExhausted, lastErr)
	hooks.emitExhausted(exhausted)

	return zero, exhausted
}

func clampDelay(d, minWait, maxWait time.Duration) time.Duration {
	if d < minWait {
		return minWait
	}
	if d > maxWait {
		return maxWait
	}

	return d
}
