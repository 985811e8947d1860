package logging

import (
	"context"
	"log/slog"

	"smartsort/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for organization run identifiers.
	FieldRunID = "run_id"
	// FieldPhase is the standardized structured logging key for run phases.
	FieldPhase = "phase"
	// FieldFile is the standardized structured logging key for the source file being handled.
	FieldFile = "file"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if phase, ok := services.PhaseFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldPhase, phase))
	}
	if file, ok := services.FileFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldFile, file))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
