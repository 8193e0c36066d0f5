// Package middleware provides the HTTP middleware chain for the API.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/sansu-dojo/drill-api/internal/api/shared"
	"github.com/sansu-dojo/drill-api/internal/platform/logger"
)

// Trace assigns every request a trace ID and a request-scoped logger
// carrying it. Apply it early in the chain so all handlers see both.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := slog.With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
