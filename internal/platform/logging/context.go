package logging

import (
	"context"

	"go.uber.org/zap"
)

// scope is what a request carries for logging.
type scope struct {
	logger  *zap.Logger
	traceID string
}

type scopeKey struct{}

func scopeFrom(ctx context.Context) scope {
	if ctx == nil {
		return scope{}
	}
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

func withScope(ctx context.Context, s scope) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, scopeKey{}, s)
}

// LoggerFromContext returns the request logger, or the process logger
// outside a request.
func LoggerFromContext(ctx context.Context) *zap.Logger {
	if l := scopeFrom(ctx).logger; l != nil {
		return l
	}
	return Logger()
}

// TraceIDFromContext returns the trace or request id the request is logged under.
func TraceIDFromContext(ctx context.Context) string {
	return scopeFrom(ctx).traceID
}

// WithLogger returns ctx logging through logger. Tests use it to observe entries.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	s := scopeFrom(ctx)
	s.logger = logger
	return withScope(ctx, s)
}

// With returns ctx whose logger adds fields to every later entry.
func With(ctx context.Context, fields ...zap.Field) context.Context {
	return WithLogger(ctx, LoggerFromContext(ctx).With(fields...))
}

func contextWithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		return ctx
	}
	s := scopeFrom(ctx)
	s.traceID = traceID
	return withScope(ctx, s)
}

// LogInfo logs at info level through the request logger.
func LogInfo(ctx context.Context, msg string, fields ...zap.Field) {
	LoggerFromContext(ctx).Info(msg, fields...)
}

// LogWarn logs at warn level through the request logger.
func LogWarn(ctx context.Context, msg string, fields ...zap.Field) {
	LoggerFromContext(ctx).Warn(msg, fields...)
}

// LogError logs at error level, adding err when it is non-nil.
func LogError(ctx context.Context, msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	LoggerFromContext(ctx).Error(msg, fields...)
}
