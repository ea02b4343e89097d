package llmretry

import (
	"time"

	"go.uber.org/zap"
)

// LoggingHooks returns [Hooks] that log lifecycle events through logger:
// an info line before each retry sleep and each rate-limit wait, and an
// error line when the attempt budget is exhausted.
func LoggingHooks(logger *zap.Logger) Hooks {
	return Hooks{
		OnRetry: func(attempt int, delay time.Duration, err error) {
			logger.Info("retrying after backoff",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(err),
			)
		},
		OnRateLimitWait: func(wait time.Duration) {
			logger.Info("rate limit reached, waiting",
				zap.Duration("wait", wait),
			)
		},
		OnExhausted: func(err error) {
			logger.Error("retries exhausted",
				zap.Error(err),
			)
		},
	}
}
