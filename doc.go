// Package llmretry shapes outgoing calls to a rate-limited LLM provider.
//
// The central type is Caller, which wraps a driver.Driver with a sliding
// window rate limiter and a retry policy using exponential backoff with
// full jitter. Every attempt, including retries, consumes rate budget, so
// the negotiated requests-per-minute limit holds even while the caller is
// recovering from transient provider failures.
package llmretry
