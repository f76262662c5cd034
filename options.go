package typecheck

import (
	"log/slog"

	"github.com/ygrebnov/typecheck/internal/binder"
)

// ReceiverMode selects how a leading receiver parameter is treated.
type ReceiverMode = binder.ReceiverMode

// Receiver modes.
const (
	ReceiverNone     = binder.ReceiverNone
	ReceiverExplicit = binder.ReceiverExplicit
	ReceiverDetect   = binder.ReceiverDetect
)

// config holds decoration-time settings shared by Wrap and WrapFunc.
type config struct {
	name       string
	paramNames []string
	receiver   binder.ReceiverMode
	logger     *slog.Logger
	metrics    bool
}

func defaultConfig() config {
	return config{metrics: true}
}

func (c config) with(opts []Option) config {
	for _, opt := range opts {
		opt(&c)
	}
	if c.paramNames != nil {
		c.paramNames = append([]string(nil), c.paramNames...)
	}
	return c
}

func (c config) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}

// Option configures a Decorator at construction time, or a single wrapped
// function when passed to Wrap / WrapFunc.
type Option func(*config)

// AsMethod marks the wrapped function as a method: its first positional
// parameter is the receiver and is never checked.
func AsMethod() Option {
	return func(c *config) { c.receiver = binder.ReceiverExplicit }
}

// WithReceiverDetection enables receiver detection: the first positional
// argument is skipped when it exposes a method or field named like the
// wrapped function.
//
// This may misclassify a regular argument that happens to expose such a
// member; prefer AsMethod when the callable is known to be a method.
func WithReceiverDetection() Option {
	return func(c *config) { c.receiver = binder.ReceiverDetect }
}

// WithReceiverMode sets the receiver mode directly.
func WithReceiverMode(m ReceiverMode) Option {
	return func(c *config) { c.receiver = m }
}

// WithName overrides the wrapped function name used for receiver detection,
// error messages, logs and metrics.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithParamNames names the parameters of a native Go function wrapped with
// WrapFunc, receiver included. Without it parameters are named by index.
func WithParamNames(names ...string) Option {
	return func(c *config) { c.paramNames = names }
}

// WithLogger sets the logger used to report rejected arguments at debug
// level. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMetrics enables or disables prometheus metrics. Enabled by default.
func WithMetrics(enabled bool) Option {
	return func(c *config) { c.metrics = enabled }
}
