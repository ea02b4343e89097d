package llmretry

import (
	"math/rand/v2"
	"time"
)

// RandFloat supplies uniform random values in [0, 1). It is injectable so
// that jittered delays can be made deterministic in tests; production code
// uses [DefaultRandFloat].
type RandFloat func() float64

// DefaultRandFloat draws from the shared math/rand/v2 generator.
func DefaultRandFloat() float64 { return rand.Float64() }

// FullJitterBackoff computes inter-attempt delays using exponential growth
// with full jitter: the ceiling doubles with each attempt, capped at Max,
// and the actual delay is drawn uniformly from [Min, ceiling]. The floor
// never drops below Min, so a retry always waits at least the configured
// minimum regardless of the random draw.
type FullJitterBackoff struct {
	Min time.Duration
	Max time.Duration
}

// Delay returns the sleep duration before re-attempting after the given
// failed attempt (1-indexed: attempt 1 yields a ceiling of Min).
func (b FullJitterBackoff) Delay(attempt int, randFloat RandFloat) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if randFloat == nil {
		randFloat = DefaultRandFloat
	}

	ceiling := b.Min
	for i := 1; i < attempt; i++ {
		ceiling *= 2
		if ceiling >= b.Max || ceiling < 0 {
			ceiling = b.Max
			break
		}
	}
	if ceiling > b.Max {
		ceiling = b.Max
	}
	if ceiling <= b.Min {
		return b.Min
	}

	span := ceiling - b.Min

	return b.Min + time.Duration(randFloat()*float64(span))
}
