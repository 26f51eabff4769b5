package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/pawar-yoga/studio-backend/pkg/config"
)

// CORS lets the marketing site, when hosted on another origin, read the
// public listings and post consultation requests. Admin pages rely on a
// same-site cookie, so credentials are never allowed cross-origin. With no
// origins configured no cross-origin headers are sent at all.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	if len(cfg.AllowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader, "Retry-After"},
		AllowCredentials: false,
		MaxAge:           int(cfg.MaxAge.Seconds()),
	}).Handler
}
