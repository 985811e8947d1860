package services

import "context"

type contextKey string

const (
	runIDKey contextKey = "run_id"
	phaseKey contextKey = "phase"
	fileKey  contextKey = "file"
)

// WithRunID annotates context with the organization run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithPhase annotates context with the run phase name (collect, consolidate, move).
func WithPhase(ctx context.Context, phase string) context.Context {
	if phase == "" {
		return ctx
	}
	return context.WithValue(ctx, phaseKey, phase)
}

// PhaseFromContext returns the phase name if present.
func PhaseFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(phaseKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithFile annotates context with the source file currently being handled.
func WithFile(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, fileKey, path)
}

// FileFromContext returns the source file path if present.
func FileFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(fileKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
