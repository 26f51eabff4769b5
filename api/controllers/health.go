package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/pawar-yoga/studio-backend/api/responses"
	"github.com/pawar-yoga/studio-backend/pkg/config"
	pkgerrors "github.com/pawar-yoga/studio-backend/pkg/errors"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
)

const readyTimeout = 2 * time.Second

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Yoga-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every named dependency answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Yoga-Env", cfg.App.Env)
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := map[string]string{}
		failed := false
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				failed = true
				checks[name] = "down"
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "health.ready.ping_failed", err)
				}
				continue
			}
			checks[name] = "up"
		}
		if failed {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
