package logging

import (
	"context"
	"errors"
	"log/slog"
)

// teeHandler sends each record to every member enabled for its level. The
// console and the JSON log file share one logger this way.
type teeHandler []slog.Handler

// newTeeHandler drops nil members and avoids wrapping when fewer than two
// remain.
func newTeeHandler(members ...slog.Handler) slog.Handler {
	var kept teeHandler
	for _, m := range members {
		if m != nil {
			kept = append(kept, m)
		}
	}
	switch len(kept) {
	case 0:
		return NoopHandler{}
	case 1:
		return kept[0]
	default:
		return kept
	}
}

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, m := range t {
		if m.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, m := range t {
		if m.Enabled(ctx, r.Level) {
			errs = append(errs, m.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.each(func(m slog.Handler) slog.Handler { return m.WithAttrs(attrs) })
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return t.each(func(m slog.Handler) slog.Handler { return m.WithGroup(name) })
}

func (t teeHandler) each(fn func(slog.Handler) slog.Handler) teeHandler {
	next := make(teeHandler, len(t))
	for i, m := range t {
		next[i] = fn(m)
	}
	return next
}
