package services

import "context"

// ctxKey identifies the per-video annotations carried through a run.
type ctxKey uint8

const (
	videoIDKey ctxKey = iota + 1
	stageKey
	runIDKey
)

// WithVideoID tags ctx with the sanitized video identifier. Blank ids leave
// ctx untouched, as do blank values for WithStage and WithRunID.
func WithVideoID(ctx context.Context, id string) context.Context {
	return annotate(ctx, videoIDKey, id)
}

// WithStage tags ctx with the pipeline stage (extract, transcribe, subtitle).
func WithStage(ctx context.Context, stage string) context.Context {
	return annotate(ctx, stageKey, stage)
}

// WithRunID tags ctx with the batch run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	return annotate(ctx, runIDKey, id)
}

func VideoIDFromContext(ctx context.Context) (string, bool) { return lookup(ctx, videoIDKey) }
func StageFromContext(ctx context.Context) (string, bool)   { return lookup(ctx, stageKey) }
func RunIDFromContext(ctx context.Context) (string, bool)   { return lookup(ctx, runIDKey) }

func annotate(ctx context.Context, key ctxKey, value string) context.Context {
	if value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func lookup(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value, _ := ctx.Value(key).(string)
	return value, value != ""
}
