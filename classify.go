package llmretry

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"

	"github.com/sanjeed5/litellm-retry-wrapper/driver"
)

// Classify partitions a remote-call failure into the transient or
// permanent class. It is the single place that inspects failure internals;
// everything above it treats the classification as authoritative.
//
// Transient: provider rate limiting (429), request timeout (408), server
// errors (5xx), network timeouts, connection resets, and truncated
// responses. Context cancellation passes through unwrapped so it is never
// retried. Everything else is permanent: auth failures, malformed
// requests, and any failure the classifier does not recognize, keeping
// programming errors from masquerading as provider hiccups.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	// Caller-initiated aborts propagate as-is.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var perr *driver.ProviderError
	if errors.As(err, &perr) {
		switch {
		case perr.StatusCode == http.StatusTooManyRequests:
			return Transient(err)
		case perr.StatusCode == http.StatusRequestTimeout:
			return Transient(err)
		case perr.StatusCode >= 500 && perr.StatusCode <= 599:
			return Transient(err)
		default:
			return Permanent(err)
		}
	}

	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return Transient(err)
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return Transient(err)
	}

	return Permanent(err)
}
