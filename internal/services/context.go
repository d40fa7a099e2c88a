package services

import "context"

type contextKey string

const (
	rowIndexKey contextKey = "row_index"
	stageKey    contextKey = "stage"
	runIDKey    contextKey = "run_id"
)

// WithRowIndex annotates context with the CSV row index being processed.
func WithRowIndex(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, rowIndexKey, index)
}

// RowIndexFromContext extracts the CSV row index if present.
func RowIndexFromContext(ctx context.Context) (int, bool) {
	v := ctx.Value(rowIndexKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	default:
		return 0, false
	}
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stageKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRunID annotates context with a run correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run correlation identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
