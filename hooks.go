package llmretry

import "time"

// Hooks holds optional callback functions for caller lifecycle events. All
// fields are nil by default; callers set only the hooks they care about.
// Once constructed, a Hooks value must not be mutated — emit methods read
// the function fields without synchronisation, which is safe as long as
// the struct is read-only after initialisation.
//
// Pattern: Observer — decouples event emission from consumers (logging,
// metrics) without the rate limiter or retry loop knowing about observers.
type Hooks struct {
	// OnRetry fires before each backoff sleep. attempt is the 1-indexed
	// attempt that just failed.
	OnRetry func(attempt int, delay time.Duration, err error)
	// OnRateLimitWait fires before each blocking rate-limit wait.
	OnRateLimitWait func(wait time.Duration)
	// OnExhausted fires when the final attempt has failed.
	OnExhausted func(err error)
}

func (h *Hooks) emitRetry(attempt int, delay time.Duration, err error) {
	if h != nil && h.OnRetry != nil {
		h.OnRetry(attempt, delay, err)
	}
}

func (h *Hooks) emitRateLimitWait(wait time.Duration) {
	if h != nil && h.OnRateLimitWait != nil {
		h.OnRateLimitWait(wait)
	}
}

func (h *Hooks) emitExhausted(err error) {
	if h != nil && h.OnExhausted != nil {
		h.OnExhausted(err)
	}
}
