package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/streamhub/backend/internal/logging"
)

// statusRecorder remembers the first status code written so the completion
// log can report it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	if sr.status == 0 {
		sr.status = status
	}
	sr.ResponseWriter.WriteHeader(status)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	return sr.ResponseWriter.Write(b)
}

// RequestLogger assigns each request an ID, stores a request-scoped logger on
// the context, and logs a completion record. Panics from downstream handlers
// are recovered and answered with a 500.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()

			reqLogger := base.With(
				slog.String("request_id", requestID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
			)

			ctx := logging.WithRequestID(logging.WithLogger(r.Context(), reqLogger), requestID)

			recorder := &statusRecorder{ResponseWriter: w}

			defer func() {
				if rec := recover(); rec != nil {
					reqLogger.Error("panic recovered", "panic", rec)
					if recorder.status == 0 {
						http.Error(recorder, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					}
				}

				status := recorder.status
				if status == 0 {
					status = http.StatusOK
				}
				reqLogger.Info("request completed",
					slog.Int("status", status),
					slog.Duration("duration", time.Since(start)),
				)
			}()

			next.ServeHTTP(recorder, r.WithContext(ctx))
		})
	}
}
