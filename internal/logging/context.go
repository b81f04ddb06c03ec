package logging

import (
	"context"
	"log/slog"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	traceKey
)

// trace carries the identifiers accumulated while a request moves through the
// service. Spans derive child traces instead of mutating the parent value.
type trace struct {
	requestID string
	traceID   string
	spanID    string
}

// WithLogger stores the provided logger on the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the request-scoped logger or falls back to slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithRequestID stores a request identifier on the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	tr := traceFrom(ctx)
	tr.requestID = requestID
	return withTrace(ctx, tr)
}

// RequestIDFromContext retrieves a previously stored request identifier.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	return traceFrom(ctx).requestID
}

func withTrace(ctx context.Context, tr trace) context.Context {
	return context.WithValue(ctx, traceKey, tr)
}

func traceFrom(ctx context.Context) trace {
	if ctx == nil {
		return trace{}
	}
	if tr, ok := ctx.Value(traceKey).(trace); ok {
		return tr
	}
	return trace{}
}
