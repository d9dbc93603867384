// Package logging provides implementations of the ports.Logger interface:
// a zerolog-backed logger for production use and a NopLogger for tests and
// quiet mode.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/devstrap/devstrap/internal/ports"
)

// ZerologLogger logs structured messages through zerolog.
type ZerologLogger struct {
	zl zerolog.Logger
}

// Option configures the logger.
type Option func(*config)

type config struct {
	out     io.Writer
	level   ports.Level
	console bool
}

// WithOutput sets the output writer (default: os.Stderr).
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.out = w
	}
}

// WithLevel sets the minimum log level (default: Info).
func WithLevel(level ports.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithConsoleFormat forces human-readable console output instead of JSON.
func WithConsoleFormat(enabled bool) Option {
	return func(c *config) {
		c.console = enabled
	}
}

// NewZerologLogger creates a logger. When stderr is a terminal it emits
// colored console output; otherwise JSON lines.
func NewZerologLogger(opts ...Option) *ZerologLogger {
	cfg := &config{
		out:     os.Stderr,
		level:   ports.LevelInfo,
		console: isatty.IsTerminal(os.Stderr.Fd()),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	out := cfg.out
	if cfg.console {
		out = zerolog.ConsoleWriter{Out: cfg.out, TimeFormat: time.Kitchen}
	}

	zl := zerolog.New(out).Level(toZerologLevel(cfg.level)).With().Timestamp().Logger()
	return &ZerologLogger{zl: zl}
}

func toZerologLevel(l ports.Level) zerolog.Level {
	switch l {
	case ports.LevelDebug:
		return zerolog.DebugLevel
	case ports.LevelWarn:
		return zerolog.WarnLevel
	case ports.LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Debug logs a debug message.
func (l *ZerologLogger) Debug(_ context.Context, msg string, fields ...ports.Field) {
	l.emit(l.zl.Debug(), msg, fields)
}

// Info logs an informational message.
func (l *ZerologLogger) Info(_ context.Context, msg string, fields ...ports.Field) {
	l.emit(l.zl.Info(), msg, fields)
}

// Warn logs a warning message.
func (l *ZerologLogger) Warn(_ context.Context, msg string, fields ...ports.Field) {
	l.emit(l.zl.Warn(), msg, fields)
}

// Error logs an error message.
func (l *ZerologLogger) Error(_ context.Context, msg string, fields ...ports.Field) {
	l.emit(l.zl.Error(), msg, fields)
}

// With returns a new logger with additional fields attached to every entry.
func (l *ZerologLogger) With(fields ...ports.Field) ports.Logger {
	zc := l.zl.With()
	for _, f := range fields {
		zc = zc.Interface(f.Key, f.Value)
	}
	return &ZerologLogger{zl: zc.Logger()}
}

func (l *ZerologLogger) emit(ev *zerolog.Event, msg string, fields []ports.Field) {
	for _, f := range fields {
		ev = ev.Interface(f.Key, f.Value)
	}
	ev.Msg(msg)
}

var _ ports.Logger = (*ZerologLogger)(nil)
