// Package log builds the slog.Logger used by msosgen. Non-error levels go
// to stdout and errors to stderr so generated hex output piped from stdout
// stays separable from diagnostics; an optional file handler can be added.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ParseLevel maps a CLI level string to a slog level, defaulting to Info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// splitHandler routes records at or above errLevel to errH, the rest to outH.
type splitHandler struct {
	outH, errH slog.Handler
	errLevel   slog.Level
}

func (s splitHandler) pick(level slog.Level) slog.Handler {
	if level >= s.errLevel {
		return s.errH
	}
	return s.outH
}

func (s splitHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return s.pick(level).Enabled(ctx, level)
}

func (s splitHandler) Handle(ctx context.Context, r slog.Record) error {
	return s.pick(r.Level).Handle(ctx, r)
}

func (s splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return splitHandler{outH: s.outH.WithAttrs(attrs), errH: s.errH.WithAttrs(attrs), errLevel: s.errLevel}
}

func (s splitHandler) WithGroup(name string) slog.Handler {
	return splitHandler{outH: s.outH.WithGroup(name), errH: s.errH.WithGroup(name), errLevel: s.errLevel}
}

// Setup builds the logger. When file is non-empty all records go there
// instead of the stdout/stderr pair; the returned closer (if any) must be
// closed by the caller on exit.
func Setup(level, file string) (*slog.Logger, io.Closer, error) {
	lvl := ParseLevel(level)
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})), f, nil
	}
	h := splitHandler{
		outH:     slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}),
		errH:     slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
		errLevel: slog.LevelError,
	}
	return slog.New(h), nil, nil
}
