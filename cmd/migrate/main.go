package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pawar-yoga/studio-backend/pkg/config"
	"github.com/pawar-yoga/studio-backend/pkg/db"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
	"github.com/pawar-yoga/studio-backend/pkg/migrate"
)

type options struct {
	cmd     string
	dir     string
	name    string
	version string
}

func main() {
	var opts options
	flag.StringVar(&opts.cmd, "cmd", "up", "migration command: up|down|status|version|create|validate")
	flag.StringVar(&opts.dir, "dir", migrate.DefaultDir, "goose migrations directory")
	flag.StringVar(&opts.name, "name", "", "migration name (for create)")
	flag.StringVar(&opts.version, "version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.Parse()

	_ = godotenv.Load()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "migrate %s: %v\n", opts.cmd, err)
		os.Exit(1)
	}
}

func run(opts options) error {
	// create and validate only touch files.
	switch opts.cmd {
	case "create":
		if opts.name == "" {
			return errors.New("missing -name")
		}
		path, err := migrate.CreateSQLMigration(opts.dir, opts.name)
		if err != nil {
			return err
		}
		fmt.Println("created migration:", path)
		return nil
	case "validate":
		if err := migrate.ValidateDir(opts.dir); err != nil {
			return err
		}
		fmt.Println("migration validation passed")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logg := logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env": cfg.App.Env,
		"cmd": opts.cmd,
		"dir": opts.dir,
		"db":  cfg.DB.Driver,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "migrate.database_unavailable", err)
		return err
	}
	defer dbClient.Close()

	// The SQL files target postgres; the embedded driver takes its schema
	// from the models.
	if cfg.DB.IsSQLite() {
		if opts.cmd != "up" {
			return fmt.Errorf("not supported for the %s driver", cfg.DB.Driver)
		}
		if err := migrate.AutoMigrate(dbClient.DB()); err != nil {
			return err
		}
		logg.Info(ctx, "migrate.sqlite_up_to_date")
		return nil
	}

	sqlDB, err := dbClient.DB().DB()
	if err != nil {
		return fmt.Errorf("sql handle: %w", err)
	}
	if err := goose(ctx, sqlDB, opts); err != nil {
		logg.Error(ctx, "migrate.failed", err)
		return err
	}
	logg.Info(ctx, "migrate.done")
	return nil
}

func goose(ctx context.Context, sqlDB *sql.DB, opts options) error {
	switch opts.cmd {
	case "up", "down", "status":
		return migrate.Run(ctx, sqlDB, opts.dir, opts.cmd)
	case "version":
		if opts.version == "" {
			return errors.New("missing -version")
		}
		return migrate.MigrateToVersion(ctx, sqlDB, opts.dir, opts.version)
	default:
		return fmt.Errorf("unknown -cmd value %q", opts.cmd)
	}
}
