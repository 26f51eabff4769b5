package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pawar-yoga/studio-backend/api/routes"
	"github.com/pawar-yoga/studio-backend/internal/auth"
	"github.com/pawar-yoga/studio-backend/internal/consultations"
	"github.com/pawar-yoga/studio-backend/internal/content"
	"github.com/pawar-yoga/studio-backend/pkg/auth/session"
	"github.com/pawar-yoga/studio-backend/pkg/blobstore"
	"github.com/pawar-yoga/studio-backend/pkg/config"
	"github.com/pawar-yoga/studio-backend/pkg/db"
	"github.com/pawar-yoga/studio-backend/pkg/instance"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
	"github.com/pawar-yoga/studio-backend/pkg/metrics"
	"github.com/pawar-yoga/studio-backend/pkg/migrate"
	"github.com/pawar-yoga/studio-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	cookies, err := session.NewCookieJar(cfg.Admin, int(sessionManager.TTL().Seconds()))
	if err != nil {
		logg.Error(context.Background(), "failed to create admin cookie jar", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		SessionManager: sessionManager,
		AdminConfig:    cfg.Admin,
		JWTConfig:      cfg.JWT,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	blobs, err := blobstore.New(cfg.Uploads.Dir, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare uploads directory", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	studioMetrics := metrics.NewStudioMetrics(registry)

	contentManager, err := content.NewManager(dbClient, blobs, studioMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create content manager", err)
		os.Exit(1)
	}

	consultationService, err := consultations.NewService(dbClient, studioMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create consultation service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":         cfg.App.Env,
		"addr":        addr,
		"uploads_dir": blobs.Dir(),
		"db_driver":   cfg.DB.Driver,
		"instance":    instance.ID(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			redisClient,
			authService,
			cookies,
			contentManager,
			consultationService,
			blobs,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if ok {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
		}
	}
}
