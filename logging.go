package pagecache

import (
	"log/slog"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// options carries the construction-time knobs shared by every cache
// constructor: an optional logger and an optional correlation ID. Neither
// affects cache semantics; both are purely for log correlation, the same
// way altmount tags long-lived objects with a uuid for its log lines.
type options struct {
	logger *slog.Logger
	id     string
}

func defaultOptions() *options {
	return &options{logger: slog.Default(), id: uuid.NewString()}
}

// Option configures optional, non-semantic behavior of a cache constructor.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) { f(o) }

// WithLogger attaches a structured logger used for page-load, eviction, and
// poisoning diagnostics. The zero value (no option) logs to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	})
}

// WithID overrides the cache's log-correlation ID, which otherwise defaults
// to a random uuid. Useful when a caller wants its own cache instances to
// line up with other log lines it is already emitting.
func WithID(id string) Option {
	return optionFunc(func(o *options) {
		if id != "" {
			o.id = id
		}
	})
}

func resolveOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(o)
	}
	return o
}

// NewRotatingLogger builds a slog.Logger writing JSON lines to a
// size-rotated, age-limited, compressed log file via lumberjack. It is entirely
// optional ambient plumbing: nothing about cache correctness depends on it,
// and callers who already have a *slog.Logger should just pass it to
// WithLogger directly.
func NewRotatingLogger(path string, maxSizeMB, maxBackups, maxAgeDays int) *slog.Logger {
	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	return slog.New(slog.NewJSONHandler(writer, nil))
}
