package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/pawar-yoga/studio-backend/pkg/logger"
)

// Logging tags the request context with method, path and client ip, then
// logs the start and the outcome of every request. Server errors log as
// warnings; the handler has already logged the cause.
func Logging(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if logg == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"method":    r.Method,
				"path":      r.URL.Path,
				"remote_ip": clientIP(r),
			})
			logg.Info(ctx, "request.start")

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			ctx = logg.WithFields(ctx, map[string]any{
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
			if status >= http.StatusInternalServerError {
				logg.Warn(ctx, "request.failed")
				return
			}
			logg.Info(ctx, "request.complete")
		})
	}
}
