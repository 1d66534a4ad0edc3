package logging

import (
	"context"
	"log/slog"

	"vidsub/internal/services"
)

// Attribute keys shared by every component so console and JSON output can be
// filtered the same way.
const (
	FieldComponent       = "component"
	FieldVideoID         = "video_id"
	FieldStage           = "stage"
	FieldRunID           = "run_id"
	FieldEventType       = "event_type"
	FieldErrorHint       = "error_hint"
	FieldImpact          = "impact"
	FieldProgressPercent = "progress_percent"
	FieldError           = "error"
)

var contextLookups = []struct {
	key    string
	lookup func(context.Context) (string, bool)
}{
	{FieldVideoID, services.VideoIDFromContext},
	{FieldStage, services.StageFromContext},
	{FieldRunID, services.RunIDFromContext},
}

// ContextFields returns the video, stage and run annotations on ctx as
// attributes.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var out []slog.Attr
	for _, l := range contextLookups {
		if v, ok := l.lookup(ctx); ok {
			out = append(out, slog.String(l.key, v))
		}
	}
	return out
}

// WithContext binds the ctx annotations to logger. A nil logger becomes a
// no-op logger.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if fields := ContextFields(ctx); len(fields) > 0 {
		return logger.With(Args(fields...)...)
	}
	return logger
}
