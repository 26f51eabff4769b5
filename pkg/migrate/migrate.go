package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/pressly/goose/v3"
)

const DefaultDir = "pkg/migrate/migrations"

// DefaultDialect is the goose dialect of the production record store.
const DefaultDialect = "postgres"

// Run validates dir and executes a goose command against db.
func Run(ctx context.Context, db *sql.DB, dir string, command string, args ...string) error {
	if db == nil {
		return errors.New("db is required")
	}
	if err := ValidateDir(dir); err != nil {
		return err
	}
	if err := goose.SetDialect(DefaultDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// MigrateToVersion moves the schema up or down to targetVersion, which must
// name a migration in dir.
func MigrateToVersion(ctx context.Context, db *sql.DB, dir string, targetVersion string) error {
	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}
	if err := knownVersion(dir, target); err != nil {
		return err
	}
	if err := goose.SetDialect(DefaultDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	current, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}
	switch {
	case current < target:
		if err := goose.UpToContext(ctx, db, dir, target); err != nil {
			return fmt.Errorf("goose up-to %d: %w", target, err)
		}
	case current > target:
		if err := goose.DownToContext(ctx, db, dir, target); err != nil {
			return fmt.Errorf("goose down-to %d: %w", target, err)
		}
	}
	return nil
}

func knownVersion(dir string, version int64) error {
	migrations, err := List(dir)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if m.Version == version {
			return nil
		}
	}
	return fmt.Errorf("no migration with version %d in %q", version, dir)
}
