package llmretry

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanjeed5/litellm-retry-wrapper/driver"
)

// Defaults applied by NewCaller when the corresponding option is absent.
const (
	// DefaultModel is the model targeted when WithModel is not given.
	DefaultModel = "gemini/gemini-2.0-flash"
	// DefaultMaxAttempts is the total attempt budget per Complete call.
	DefaultMaxAttempts = 3
	// DefaultMinRetryWait is the backoff floor.
	DefaultMinRetryWait = 4 * time.Second
	// DefaultMaxRetryWait is the backoff ceiling.
	DefaultMaxRetryWait = 10 * time.Second
	// rateWindow is the rolling window the rpm budget applies to.
	rateWindow = time.Minute
)

// Caller composes a sliding window rate limiter and a retry policy around
// a [driver.Driver]. One Caller instance is safe for concurrent use; the
// limiter is the only shared mutable state and synchronises internally.
//
// Pattern: explicit composition — admission and retry are independent,
// separately testable components invoked in a fixed order, not an implicit
// decorator chain.
type Caller struct {
	drv       driver.Driver
	model     string
	limiter   *SlidingWindowLimiter
	retry     RetryConfig
	hooks     Hooks
	clock     Clock
	randFloat RandFloat
}

// Option configures a Caller.
type Option func(*callerSetup)

type callerSetup struct {
	model     string
	rpm       int
	retry     RetryConfig
	hooks     Hooks
	hasHooks  bool
	clock     Clock
	randFloat RandFloat
	logger    *zap.Logger
}

// WithModel selects which remote model completion requests target.
func WithModel(model string) Option {
	return func(s *callerSetup) { s.model = model }
}

// WithRPM sets the request budget per rolling minute, overriding the
// per-model default table.
func WithRPM(rpm int) Option {
	return func(s *callerSetup) { s.rpm = rpm }
}

// WithMaxRetries sets the total attempt budget, including the first
// attempt.
func WithMaxRetries(maxAttempts int) Option {
	return func(s *callerSetup) { s.retry.MaxAttempts = maxAttempts }
}

// WithRetryWait bounds the inter-attempt backoff delay.
func WithRetryWait(minWait, maxWait time.Duration) Option {
	return func(s *callerSetup) {
		s.retry.MinWait = minWait
		s.retry.MaxWait = maxWait
	}
}

// WithHooks sets lifecycle hooks for rate-limit waits and retries.
func WithHooks(h Hooks) Option {
	return func(s *callerSetup) {
		s.hooks = h
		s.hasHooks = true
	}
}

// WithClock sets the clock used for rate-limit waits and backoff sleeps.
func WithClock(c Clock) Option {
	return func(s *callerSetup) { s.clock = c }
}

// WithRandFloat sets the random source used for backoff jitter.
func WithRandFloat(r RandFloat) Option {
	return func(s *callerSetup) { s.randFloat = r }
}

// WithLogger installs [LoggingHooks] backed by logger. Ignored when
// WithHooks is also given, so explicit hooks keep precedence.
func WithLogger(logger *zap.Logger) Option {
	return func(s *callerSetup) { s.logger = logger }
}

// NewCaller builds a Caller around d. Defaults: model
// gemini/gemini-2.0-flash, rpm from the per-model table, 3 attempts,
// backoff in [4s, 10s].
func NewCaller(d driver.Driver, opts ...Option) (*Caller, error) {
	if d == nil {
		return nil, fmt.Errorf("llmretry: driver is required")
	}

	setup := callerSetup{
		model: DefaultModel,
		retry: RetryConfig{
			MaxAttempts: DefaultMaxAttempts,
			MinWait:     DefaultMinRetryWait,
			MaxWait:     DefaultMaxRetryWait,
		},
	}
	for _, opt := range opts {
		opt(&setup)
	}

	if setup.rpm == 0 {
		setup.rpm = lookupModelRPM(setup.model)
	}
	if setup.rpm < 0 {
		return nil, fmt.Errorf("llmretry: rpm must be positive, got %d", setup.rpm)
	}
	if setup.retry.MaxAttempts < 1 {
		return nil, fmt.Errorf("llmretry: max retries must be at least 1, got %d", setup.retry.MaxAttempts)
	}
	if setup.retry.MinWait > setup.retry.MaxWait {
		return nil, fmt.Errorf(
			"llmretry: min retry wait %v exceeds max retry wait %v",
			setup.retry.MinWait, setup.retry.MaxWait,
		)
	}

	if setup.clock == nil {
		setup.clock = RealClock{}
	}
	if setup.randFloat == nil {
		setup.randFloat = DefaultRandFloat
	}
	if !setup.hasHooks && setup.logger != nil {
		setup.hooks = LoggingHooks(setup.logger)
	}

	c := &Caller{
		drv:       d,
		model:     setup.model,
		retry:     setup.retry,
		hooks:     setup.hooks,
		clock:     setup.clock,
		randFloat: setup.randFloat,
	}
	c.limiter = NewSlidingWindowLimiter(setup.rpm, rateWindow, setup.clock, &c.hooks)

	return c, nil
}

// Model returns the model completion requests target by default.
func (c *Caller) Model() string { return c.model }

// CallOption overrides per-request parameters; unset fields are omitted
// from the wire request and left to provider defaults.
type CallOption func(*driver.Request)

// WithTemperature sets the sampling temperature for one call.
func WithTemperature(t float64) CallOption {
	return func(req *driver.Request) { req.Temperature = &t }
}

// WithMaxTokens caps the response length for one call.
func WithMaxTokens(n int) CallOption {
	return func(req *driver.Request) { req.MaxTokens = &n }
}

// WithModelOverride targets a different model for one call.
func WithModelOverride(model string) CallOption {
	return func(req *driver.Request) { req.Model = model }
}

// WithResponseFormat requests a specific response format for one call.
func WithResponseFormat(format string) CallOption {
	return func(req *driver.Request) {
		req.ResponseFormat = &driver.ResponseFormat{Type: format}
	}
}

// WithMetadata attaches provider-opaque metadata to one call.
func WithMetadata(md map[string]string) CallOption {
	return func(req *driver.Request) { req.Metadata = md }
}

// Complete sends messages to the configured model. Each attempt, retries
// included, first acquires rate-limit admission (blocking if the minute
// budget is spent) and then performs the remote call, so retries can never
// push throughput past the negotiated budget.
//
// The returned error is one of: a permanent failure, the last transient
// failure wrapped in [ErrRetriesExhausted], or a context error when ctx is
// cancelled at either suspension point.
func (c *Caller) Complete(ctx context.Context, messages []driver.Message, opts ...CallOption) (*driver.Response, error) {
	if len(messages) == 0 {
		return nil, Permanent(fmt.Errorf("llmretry: at least one message is required"))
	}

	req := &driver.Request{
		Model:    c.model,
		Messages: messages,
	}
	for _, opt := range opts {
		opt(req)
	}

	attempt := func(ctx context.Context) (*driver.Response, error) {
		if err := c.limiter.Acquire(ctx); err != nil {
			return nil, err
		}

		resp, err := c.drv.Complete(ctx, req)
		if err != nil {
			// Classification happens exactly once, here at the boundary.
			return nil, Classify(err)
		}

		return resp, nil
	}

	return Retry(ctx, c.retry, attempt, &c.hooks, c.clock, c.randFloat)
}
