package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/leap/internal/config/loader"
	"github.com/dshills/leap/internal/leap"
	"github.com/dshills/leap/internal/logging"
)

// LeapSection configures leap motions.
type LeapSection struct {
	// FullView makes leaps scan the whole buffer instead of the viewport
	// when a key binding does not say.
	FullView bool `toml:"full_view" yaml:"full_view"`
	// ForwardBoundary is "exclusive" or "inclusive".
	ForwardBoundary string `toml:"forward_boundary" yaml:"forward_boundary"`
	// ReverseBoundary is "exclusive" or "inclusive".
	ReverseBoundary string `toml:"reverse_boundary" yaml:"reverse_boundary"`
}

// LogSection configures logging.
type LogSection struct {
	Level      string `toml:"level" yaml:"level"`
	File       string `toml:"file" yaml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" yaml:"max_backups"`
}

// Config is the full leap configuration.
type Config struct {
	Leap LeapSection `toml:"leap" yaml:"leap"`
	Log  LogSection  `toml:"log" yaml:"log"`
	// Keys maps key names to action names.
	Keys map[string]string `toml:"keys" yaml:"keys"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Leap: LeapSection{
			FullView:        false,
			ForwardBoundary: leap.DefaultBoundary.Forward.String(),
			ReverseBoundary: leap.DefaultBoundary.Reverse.String(),
		},
		Log: LogSection{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Keys: map[string]string{
			"s": "leap.forward",
			"S": "leap.backward",
			";": "leap.repeat",
			",": "leap.repeatReverse",
		},
	}
}

// Load reads path over the defaults. An empty path or a missing file yields
// the defaults.
func Load(path string) (Config, error) {
	return LoadWith(loader.New(), path)
}

// LoadWith is Load with an explicit loader.
func LoadWith(l *loader.Loader, path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := l.LoadInto(path, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Environment variables read by ApplyEnv.
const (
	EnvFullView = "LEAP_FULL_VIEW"
	EnvLogLevel = "LEAP_LOG_LEVEL"
	EnvLogFile  = "LEAP_LOG_FILE"
)

// ApplyEnv overrides settings from the environment using lookup
// (os.LookupEnv when nil).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(EnvFullView); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvFullView, err)
		}
		c.Leap.FullView = b
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		c.Log.File = v
	}
	return nil
}

// Validate checks every setting and reports all problems together.
func (c Config) Validate() error {
	var problems []string

	if _, err := leap.ParseBound(c.Leap.ForwardBoundary); err != nil {
		problems = append(problems, fmt.Sprintf("leap.forward_boundary: %q is not inclusive or exclusive", c.Leap.ForwardBoundary))
	}
	if _, err := leap.ParseBound(c.Leap.ReverseBoundary); err != nil {
		problems = append(problems, fmt.Sprintf("leap.reverse_boundary: %q is not inclusive or exclusive", c.Leap.ReverseBoundary))
	}
	if !logging.ValidLevel(c.Log.Level) {
		problems = append(problems, fmt.Sprintf("log.level: %q is not a log level", c.Log.Level))
	}
	if c.Log.MaxSizeMB < 0 {
		problems = append(problems, "log.max_size_mb: must not be negative")
	}
	if c.Log.MaxBackups < 0 {
		problems = append(problems, "log.max_backups: must not be negative")
	}
	for key, action := range c.Keys {
		if !strings.HasPrefix(action, "leap.") {
			problems = append(problems, fmt.Sprintf("keys.%s: %q is not a leap action", key, action))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Boundary returns the configured boundary policy. Invalid values fall back
// to leap.DefaultBoundary for that direction.
func (c Config) Boundary() leap.Boundary {
	b := leap.DefaultBoundary
	if fwd, err := leap.ParseBound(c.Leap.ForwardBoundary); err == nil {
		b.Forward = fwd
	}
	if rev, err := leap.ParseBound(c.Leap.ReverseBoundary); err == nil {
		b.Reverse = rev
	}
	return b
}

// LoggerConfig returns the logging configuration.
func (c Config) LoggerConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(c.Log.Level)
	lc.File = c.Log.File
	if c.Log.MaxSizeMB > 0 {
		lc.MaxSizeMB = c.Log.MaxSizeMB
	}
	if c.Log.MaxBackups > 0 {
		lc.MaxBackups = c.Log.MaxBackups
	}
	return lc
}

// ActionForKey returns the action bound to key.
func (c Config) ActionForKey(key string) (string, bool) {
	action, ok := c.Keys[key]
	return action, ok
}
