package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	// LoggerKey carries the request-scoped logger.
	LoggerKey contextKey = "logger"
	// RequestIDKey carries the request identifier.
	RequestIDKey contextKey = "request_id"
	// UserIDKey carries the authenticated user's ID.
	UserIDKey contextKey = "user_id"
)

// WithContext attaches logger to ctx.
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext returns the logger stored in ctx. Contexts without one get
// a no-op logger, so call sites never need a nil check.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// WithRequestID stores requestID in ctx and returns a logger that tags
// every entry with it.
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	enriched := logger.With(zap.String("request_id", requestID))
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	return WithContext(ctx, enriched), enriched
}

// WithUserID stores userID in ctx and returns a logger tagged with it.
func WithUserID(ctx context.Context, logger *zap.Logger, userID string) (context.Context, *zap.Logger) {
	enriched := logger.With(zap.String("user_id", userID))
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return WithContext(ctx, enriched), enriched
}

// GetRequestID reads the request ID from ctx, if any.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// GetUserID reads the user ID from ctx, if any.
func GetUserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}
