package llmretry

import (
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
)

// CallerConfig holds decoded configuration for a [Caller]. Export it to
// embed in your own app config structs for JSON unmarshaling, then call
// [BuildOptions] to obtain functional options for [NewCaller]. All fields
// are optional; absent fields keep their defaults.
type CallerConfig struct {
	// Model selects which remote model calls target.
	// Example: "gemini/gemini-2.0-flash".
	Model *string `json:"model,omitempty" yaml:"model,omitempty"`
	// RPM is the request budget per rolling minute.
	// Example: 2000.
	RPM *int `json:"rpm,omitempty" yaml:"rpm,omitempty"`
	// MaxRetries is the total attempt budget including the first attempt.
	// Example: 3.
	MaxRetries *int `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
	// MinRetryWait is the backoff floor.
	// Parsed via time.ParseDuration. Example: "4s".
	MinRetryWait *string `json:"min_retry_wait,omitempty" yaml:"min_retry_wait,omitempty"`
	// MaxRetryWait is the backoff ceiling.
	// Parsed via time.ParseDuration. Example: "10s".
	MaxRetryWait *string `json:"max_retry_wait,omitempty" yaml:"max_retry_wait,omitempty"`
}

// LoadConfig reads a JSON configuration file and converts it into options
// for [NewCaller]. Duration values are parsed using [time.ParseDuration];
// errors surface at load time rather than at first call.
func LoadConfig(path string) ([]Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("llmretry: read config: %w", err)
	}

	var cfg CallerConfig
	if err = json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("llmretry: parse config: %w", err)
	}

	opts, err := BuildOptions(&cfg)
	if err != nil {
		return nil, fmt.Errorf("llmretry: config: %w", err)
	}

	return opts, nil
}

// BuildOptions converts a [CallerConfig] into functional options suitable
// for [NewCaller]. Use this when you embed [CallerConfig] in your own
// config struct instead of going through [LoadConfig].
func BuildOptions(cfg *CallerConfig) ([]Option, error) {
	var opts []Option

	if cfg.Model != nil {
		opts = append(opts, WithModel(*cfg.Model))
	}

	if cfg.RPM != nil {
		if *cfg.RPM <= 0 {
			return nil, fmt.Errorf("rpm must be positive, got %d", *cfg.RPM)
		}

		opts = append(opts, WithRPM(*cfg.RPM))
	}

	if cfg.MaxRetries != nil {
		if *cfg.MaxRetries < 1 {
			return nil, fmt.Errorf("max_retries must be at least 1, got %d", *cfg.MaxRetries)
		}

		opts = append(opts, WithMaxRetries(*cfg.MaxRetries))
	}

	if cfg.MinRetryWait != nil || cfg.MaxRetryWait != nil {
		minWait := DefaultMinRetryWait
		maxWait := DefaultMaxRetryWait

		if cfg.MinRetryWait != nil {
			d, err := time.ParseDuration(*cfg.MinRetryWait)
			if err != nil {
				return nil, fmt.Errorf("min_retry_wait: %w", err)
			}

			minWait = d
		}

		if cfg.MaxRetryWait != nil {
			d, err := time.ParseDuration(*cfg.MaxRetryWait)
			if err != nil {
				return nil, fmt.Errorf("max_retry_wait: %w", err)
			}

			maxWait = d
		}

		if minWait > maxWait {
			return nil, fmt.Errorf(
				"min_retry_wait %v exceeds max_retry_wait %v",
				minWait, maxWait,
			)
		}

		opts = append(opts, WithRetryWait(minWait, maxWait))
	}

	return opts, nil
}
