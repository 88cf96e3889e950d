// Package middleware holds HTTP middleware shared by the REST and web
// surfaces.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/novatech/taskflow/internal/api/shared"
	"github.com/novatech/taskflow/internal/platform/logger"
)

// TraceMiddleware stamps a trace ID onto the request context and binds a
// logger carrying it, so every log line downstream correlates with the
// response. Apply it early in the middleware chain.
func TraceMiddleware(next http.Handler) http.Handler {
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
