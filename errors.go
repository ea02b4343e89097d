package llmretry

import "errors"

// ---------------------------------------------------------------------------
// Error classification wrappers
// ---------------------------------------------------------------------------

type (
	// transientError marks a wrapped error as transient (retriable).
	transientError struct {
		err error
	}

	// permanentError marks a wrapped error as permanent (non-retriable).
	permanentError struct {
		err error
	}

	// callerError is the concrete type backing sentinel errors.
	callerError string
)

// ErrRetriesExhausted is returned when all retry attempts have been used.
// It wraps the last transient error observed, so errors.Is/As still reach
// the underlying failure.
var ErrRetriesExhausted error = callerError("retries exhausted")

func (e *transientError) Error() string { return "transient: " + e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func (e *permanentError) Error() string { return "permanent: " + e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func (e callerError) Error() string { return string(e) }

// Transient wraps err to mark it as a transient (retriable) error.
// Returns nil if err is nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}

	return &transientError{err: err}
}

// Permanent wraps err to mark it as a permanent (non-retriable) error.
// Returns nil if err is nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}

	return &permanentError{err: err}
}

// IsTransient reports whether err was explicitly marked as transient.
// Unclassified errors are NOT transient: an unrecognized failure is more
// likely a programming error than a provider hiccup, and retrying it would
// only mask the bug. Returns false for nil.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var te *transientError

	return errors.As(err, &te)
}

// IsPermanent reports whether err was explicitly marked as permanent.
// Returns false for nil and for unclassified errors.
func IsPermanent(err error) bool {
	if err == nil {
		return false
	}

	var pe *permanentError

	return errors.As(err, &pe)
}
