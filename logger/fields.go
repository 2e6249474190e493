package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldChartID = "chart_id"

	// Components
	FieldComponent = "component"

	// Pipeline
	FieldStage  = "stage"
	FieldPalace = "palace"
	FieldBranch = "branch"
	FieldStem   = "stem"
	FieldStar   = "star"
	FieldBureau = "bureau"

	// Operations
	FieldOperation = "operation"
	FieldFormat    = "format"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount = "count"

	// Files and paths
	FieldFile = "file"
)

// Context keys for propagating logging context
type contextKey string

const (
	chartIDKey   contextKey = "logger_chart_id"
	componentKey contextKey = "logger_component"
)

// WithChartID adds a chart reference ID to the context for logging
func WithChartID(ctx context.Context, chartID string) context.Context {
	return context.WithValue(ctx, chartIDKey, chartID)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if chartID, ok := ctx.Value(chartIDKey).(string); ok && chartID != "" {
		fields = append(fields, FieldChartID, chartID)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns a logger with fields extracted from context.
// Use this to get a logger that automatically includes chart_id etc.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Engine struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewEngine() *Engine {
//	    return &Engine{
//	        logger: logger.ComponentLogger("chart.engine"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
// Use for sub-operations that need extra context fields.
//
// Example:
//
//	stageLogger := logger.ChildLogger(baseLogger, logger.FieldStage, name)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}

// Stage-tagged logging helpers.
// These log with the pipeline stage as a structured field, not in the
// message, which keeps messages clean and logs filterable by stage.

// StageLogger wraps a logger with a stage field.
//
// Example:
//
//	log := logger.StageLogger(e.logger, "bureau")
//	log.Debugw("five-element class fixed", logger.FieldBureau, b)
func StageLogger(l *zap.SugaredLogger, stage string) *zap.SugaredLogger {
	return l.With(FieldStage, stage)
}

// StageDebugw logs a debug message tagged with a stage name on the global
// logger.
func StageDebugw(stage, msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldStage, stage}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// StageErrorw logs an error message tagged with a stage name on the global
// logger.
func StageErrorw(stage, msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldStage, stage}, keysAndValues...)
		Logger.Errorw(msg, fields...)
	}
}
