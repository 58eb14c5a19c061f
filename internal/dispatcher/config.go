package dispatcher

import "github.com/dshills/leap/internal/logging"

// Config holds dispatcher configuration options.
type Config struct {
	// RecoverFromPanic wraps handler execution in panic recovery.
	RecoverFromPanic bool

	// MaxRepeatCount limits the maximum repeat count for actions.
	// Zero means no limit.
	MaxRepeatCount int

	// Logger receives dispatch tracing. Nil discards it.
	Logger *logging.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RecoverFromPanic: true,
		MaxRepeatCount:   10000,
	}
}

// WithLogger returns a copy of the config with the logger set.
func (c Config) WithLogger(logger *logging.Logger) Config {
	c.Logger = logger
	return c
}
