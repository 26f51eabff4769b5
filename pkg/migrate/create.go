package migrate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const versionLayout = "20060102150405"

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

const sqlTemplate = `-- +goose Up
-- +goose StatementBegin
-- %[1]s
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- undo %[1]s
-- +goose StatementEnd
`

// CreateSQLMigration writes an empty goose migration named
// <dir>/<YYYYMMDDHHMMSS>_<slug>.sql and returns its path.
func CreateSQLMigration(dir string, name string) (string, error) {
	return createSQLMigration(dir, name, time.Now())
}

func createSQLMigration(dir, name string, now time.Time) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", errors.New("dir is required")
	}
	slug := migrationSlug(name)
	if slug == "" {
		return "", fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.sql", now.UTC().Format(versionLayout), slug))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("migration already exists: %s", path)
		}
		return "", fmt.Errorf("create migration %q: %w", path, err)
	}
	if _, err := fmt.Fprintf(f, sqlTemplate, slug); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write migration %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close migration %q: %w", path, err)
	}
	return path, nil
}

// migrationSlug lowercases name and joins its alphanumeric runs with
// underscores.
func migrationSlug(name string) string {
	return strings.Trim(nonSlugRe.ReplaceAllString(strings.ToLower(name), "_"), "_")
}
