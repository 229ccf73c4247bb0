package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/aidflow/fundflow-backend/pkg/ctxutil"
)

// Recovery returns middleware that recovers from panics, logs the error
// with a stack trace, and responds with 500 and the correlation id.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					requestID := ctxutil.RequestIDFromCtx(r.Context())
					logger.ErrorContext(r.Context(), "panic recovered",
						slog.Any("error", err),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("request_id", requestID),
					)
					writeError(w, http.StatusInternalServerError, "internal server error; correlation id: "+requestID)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
