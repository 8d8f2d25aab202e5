package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Logger attaches a request-scoped logger to the context and emits a
// completion entry once the handler returns.
func Logger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logCtx := logger.With().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", req.RemoteAddr)
			if reqID := GetRequestID(req.Context()); reqID != "" {
				logCtx = logCtx.Str("request_id", reqID)
			}
			reqLogger := logCtx.Logger()

			ctx := reqLogger.WithContext(req.Context())
			req = req.WithContext(ctx)

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, req)

			reqLogger.Info().
				Int("status", rec.Status()).
				Dur("duration", time.Since(start)).
				Msg("request served")
		})
	}
}
