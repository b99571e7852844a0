package observability

import (
	"context"

	"go.uber.org/zap"
)

// WithContext tags the logger with the trace and span of ctx, if any.
func WithContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	fields := TraceFields(ctx)
	if fields == nil {
		return logger
	}

	return logger.With(fields...)
}
