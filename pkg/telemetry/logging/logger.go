package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"mercator-hq/tagviz/pkg/config"
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	FormatJSON    LogFormat = "json"
	FormatText    LogFormat = "text"    // logfmt
	FormatConsole LogFormat = "console" // logfmt without timestamps
)

// Logger wraps a *slog.Logger and adds the context fields of this package
// to the *Context methods.
type Logger struct {
	slog   *slog.Logger
	level  slog.Level
	format LogFormat
}

// Config configures New. A nil Writer means os.Stderr, which keeps stdout
// free for rendered output.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Writer    io.Writer
}

// FromConfig maps the telemetry.logging section onto a Config.
func FromConfig(cfg config.LoggingConfig, w io.Writer) Config {
	return Config{Level: cfg.Level, Format: cfg.Format, AddSource: cfg.AddSource, Writer: w}
}

func New(cfg Config) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	format, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("invalid log format: %w", err)
	}

	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level, AddSource: cfg.AddSource}

	var h slog.Handler
	switch format {
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	case FormatConsole:
		opts.ReplaceAttr = consoleAttrs
		h = slog.NewTextHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	return &Logger{slog: slog.New(h), level: level, format: format}, nil
}

// consoleAttrs drops the timestamp and lower-cases the level.
func consoleAttrs(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		return slog.Attr{}
	case slog.LevelKey:
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			return slog.String(slog.LevelKey, strings.ToLower(lvl.String()))
		}
	}
	return a
}

// Nop returns a logger that is disabled at every level.
func Nop() *Logger {
	off := slog.LevelError + 1
	return &Logger{
		slog:   slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: off})),
		level:  off,
		format: FormatText,
	}
}

// Slog returns the underlying logger for packages that take a *slog.Logger.
func (l *Logger) Slog() *slog.Logger { return l.slog }
func (l *Logger) Level() slog.Level { return l.level }
func (l *Logger) Format() LogFormat { return l.format }

func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logContext(ctx, slog.LevelDebug, msg, args)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logContext(ctx, slog.LevelInfo, msg, args)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logContext(ctx, slog.LevelWarn, msg, args)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logContext(ctx, slog.LevelError, msg, args)
}

func (l *Logger) logContext(ctx context.Context, level slog.Level, msg string, args []any) {
	if !l.slog.Enabled(ctx, level) {
		return
	}
	l.slog.Log(ctx, level, msg, append(extractContextFields(ctx), args...)...)
}

func (l *Logger) With(args ...any) *Logger {
	cp := *l
	cp.slog = l.slog.With(args...)
	return &cp
}

// WithContext binds the context fields of ctx to a new logger. It returns
// l itself when ctx carries none.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	fields := extractContextFields(ctx)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// ParseLevel accepts debug, info, warn (or warning) and error in any case.
// The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level: %s", s)
}

func parseFormat(s string) (LogFormat, error) {
	switch f := LogFormat(strings.ToLower(s)); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatConsole:
		return f, nil
	}
	return FormatText, fmt.Errorf("unknown log format: %s", s)
}
