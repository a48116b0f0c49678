// Package log builds the slog.Logger used by the generator.
//
// Without a log file, records below error go to stdout and errors go to
// stderr. With a log file, everything goes to stderr and to the file.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// LevelTrace is below Debug and prints every resolved member.
const LevelTrace slog.Level = -8

func ParseLevel(s string) slog.Level {
	switch s {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fanOut sends records to every handler.
type fanOut []slog.Handler

func (f fanOut) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanOut) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (f fanOut) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanOut, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanOut) WithGroup(name string) slog.Handler {
	out := make(fanOut, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// below passes only records under the given level.
type below struct {
	limit slog.Level
	slog.Handler
}

func (b below) Enabled(ctx context.Context, level slog.Level) bool {
	return level < b.limit && b.Handler.Enabled(ctx, level)
}

func (b below) WithAttrs(attrs []slog.Attr) slog.Handler {
	return below{limit: b.limit, Handler: b.Handler.WithAttrs(attrs)}
}

func (b below) WithGroup(name string) slog.Handler {
	return below{limit: b.limit, Handler: b.Handler.WithGroup(name)}
}

// SetupLogger returns the logger and the files the caller must close.
func SetupLogger(logLevel, logFile string) (*slog.Logger, []io.Closer, error) {
	return setup(logLevel, logFile, os.Stdout, os.Stderr)
}

func setup(logLevel, logFile string, stdout, stderr io.Writer) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(logLevel)

	if logFile == "" {
		handlers := fanOut{
			below{limit: slog.LevelError, Handler: slog.NewTextHandler(stdout, &slog.HandlerOptions{Level: level})},
			slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelError}),
		}
		return slog.New(handlers), nil, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	handlers := fanOut{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}),
		slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}),
	}
	return slog.New(handlers), []io.Closer{f}, nil
}
