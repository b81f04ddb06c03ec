package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Span is a logical unit of work tied to a request trace. Ending the span
// emits a completion record with its measured duration.
type Span struct {
	name   string
	logger *slog.Logger
	start  time.Time
}

// StartSpan derives a child span from the provided context. The returned
// context carries a logger enriched with trace, span, and parent identifiers,
// minting a fresh trace ID when the context has none.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := FromContext(ctx)
	tr := traceFrom(ctx)

	if tr.traceID == "" {
		tr.traceID = uuid.NewString()
		logger = logger.With(slog.String("trace_id", tr.traceID))
	}

	parent := tr.spanID
	tr.spanID = uuid.NewString()

	logger = logger.With(
		slog.String("span_id", tr.spanID),
		slog.String("span_name", name),
	)
	if parent != "" {
		logger = logger.With(slog.String("parent_span_id", parent))
	}

	ctx = WithLogger(withTrace(ctx, tr), logger)

	return ctx, &Span{name: name, logger: logger, start: time.Now()}
}

// End finalizes the span and emits a completion log entry.
func (s *Span) End() {
	if s == nil {
		return
	}
	s.logger.Info("span completed", slog.Duration("duration", time.Since(s.start)))
}
