// Package logging provides the leveled logger used across leap.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is the severity of a log message.
type Level int

const (
	// LevelDebug is for detailed tracing of searches.
	LevelDebug Level = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for recoverable problems.
	LevelWarn
	// LevelError is for failures.
	LevelError
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name. Unknown names map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// ValidLevel returns true if s names a level.
func ValidLevel(s string) bool {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// Config configures a Logger.
type Config struct {
	// Level is the minimum level written.
	Level Level
	// Output receives log lines. Defaults to os.Stderr unless File is set.
	Output io.Writer
	// Prefix is prepended to every message.
	Prefix string

	// File, when set, sends output to a rotated log file.
	File string
	// MaxSizeMB is the size at which File is rotated.
	MaxSizeMB int
	// MaxBackups is the number of rotated files kept.
	MaxBackups int
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:      LevelInfo,
		Output:     os.Stderr,
		Prefix:     "leap",
		MaxSizeMB:  10,
		MaxBackups: 3,
	}
}

// sink is the shared destination of a logger and its derived loggers.
type sink struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
}

// Logger writes leveled messages with optional structured fields.
// Loggers derived with WithField share the parent's output.
type Logger struct {
	sink     *sink
	level    Level
	prefix   string
	fields   map[string]any
	disabled bool
}

// New creates a logger from cfg.
func New(cfg Config) *Logger {
	s := &sink{out: cfg.Output}
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		s.out = rotator
		s.closer = rotator
	}
	if s.out == nil {
		s.out = os.Stderr
	}
	return &Logger{
		sink:   s,
		level:  cfg.Level,
		prefix: cfg.Prefix,
		fields: make(map[string]any),
	}
}

// Null returns a logger that discards everything.
func Null() *Logger {
	return &Logger{sink: &sink{out: io.Discard}, disabled: true}
}

// OrNull returns l, or a discarding logger if l is nil.
func OrNull(l *Logger) *Logger {
	if l == nil {
		return Null()
	}
	return l
}

// WithField returns a logger with key set on every message.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// WithFields returns a logger with all of fields set on every message.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{
		sink:     l.sink,
		level:    l.level,
		prefix:   l.prefix,
		fields:   merged,
		disabled: l.disabled,
	}
}

// WithComponent returns a logger tagged with a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// Enabled returns true if messages at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return !l.disabled && level >= l.level
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.sink.closer == nil {
		return nil
	}
	return l.sink.closer.Close()
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LevelDebug, msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	l.log(LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LevelError, msg, args...)
}

func (l *Logger) log(level Level, msg string, args ...any) {
	if !l.Enabled(level) {
		return
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02T15:04:05.000"))
	b.WriteString(" [")
	b.WriteString(level.String())
	b.WriteString("] ")
	if l.prefix != "" {
		b.WriteString(l.prefix)
		b.WriteString(": ")
	}
	b.WriteString(msg)

	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, l.fields[k])
		}
		b.WriteString("}")
	}
	b.WriteString("\n")

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	_, _ = io.WriteString(l.sink.out, b.String())
}
