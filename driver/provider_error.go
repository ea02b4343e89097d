package driver

import (
	"fmt"
	"time"
)

// ProviderError is returned when a provider responds with a non-2xx status.
//
// Drivers should populate RawBody with the provider response body bytes.
// RawBody must never include API keys.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	// RetryAfter is the delay the provider asked for via a Retry-After
	// header, when present.
	RetryAfter *time.Duration
	RawBody    []byte
}

func (e *ProviderError) Error() string {
	if e == nil {
		return "provider error"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s request failed: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}

	return fmt.Sprintf("%s request failed: %s", e.Provider, e.Message)
}

// RetryAfterDelay reports the server-provided retry-after delay, if any.
func (e *ProviderError) RetryAfterDelay() (time.Duration, bool) {
	if e == nil || e.RetryAfter == nil {
		return 0, false
	}

	return *e.RetryAfter, true
}
