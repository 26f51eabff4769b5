package migrate

import (
	"context"
	"fmt"

	"github.com/pawar-yoga/studio-backend/pkg/config"
	"github.com/pawar-yoga/studio-backend/pkg/db"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
)

// MaybeRunDev brings the schema up to date at startup, but only in dev with
// YOGA_AUTO_MIGRATE set. Other environments run cmd/migrate explicitly.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "driver": cfg.DB.Driver})

	if cfg.DB.IsSQLite() {
		logg.Info(ctx, "migrate.autorun.models")
		return AutoMigrate(client.DB())
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}
	logg.Info(logg.WithField(ctx, "dir", DefaultDir), "migrate.autorun.goose")
	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}
	logg.Info(ctx, "migrate.autorun.done")
	return nil
}
