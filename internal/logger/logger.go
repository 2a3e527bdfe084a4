// Package logger builds the diagnostic slog.Logger for one run. It holds no
// package state; callers pass the logger down explicitly.
package logger

import (
	"context"
	"io"
	"log/slog"
	"time"

	"serotyper/internal/runctx"
)

type Options struct {
	Debug bool
	Quiet bool
}

// New returns a JSON logger writing to w. Quiet keeps errors only, Debug
// enables debug records with source locations; the default level is warn.
func New(w io.Writer, o Options) *slog.Logger {
	if w == nil {
		return Discard()
	}
	level := slog.LevelWarn
	switch {
	case o.Debug:
		level = slog.LevelDebug
	case o.Quiet:
		level = slog.LevelError
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: o.Debug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	})
	return slog.New(h)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// ForRun returns l annotated with the run id carried by ctx.
func ForRun(ctx context.Context, l *slog.Logger) *slog.Logger {
	if l == nil {
		l = Discard()
	}
	if id := runctx.RunID(ctx); id != "" {
		return l.With("run_id", id)
	}
	return l
}
