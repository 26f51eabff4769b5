package migrate

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var migrationFileRe = regexp.MustCompile(`^(\d{14})_([a-z0-9_]+)\.sql$`)

// Migration is one goose SQL file on disk.
type Migration struct {
	Version int64
	Name    string
	Path    string
}

// List returns the SQL migrations in dir ordered by version. Badly named
// files and repeated versions are errors.
func List(dir string) ([]Migration, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("dir is required")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	byVersion := map[int64]string{}
	var out []Migration
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".sql" {
			continue
		}
		m := migrationFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			return nil, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", e.Name())
		}
		version, _ := strconv.ParseInt(m[1], 10, 64)
		if prev, ok := byVersion[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %d in %q and %q", version, prev, e.Name())
		}
		byVersion[version] = e.Name()
		out = append(out, Migration{Version: version, Name: m[2], Path: filepath.Join(dir, e.Name())})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// ValidateDir checks every migration in dir: the file name, an Up section
// ahead of a Down section, and balanced statement markers.
func ValidateDir(dir string) error {
	migrations, err := List(dir)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if err := checkAnnotations(m.Path); err != nil {
			return fmt.Errorf("migration %q: %w", filepath.Base(m.Path), err)
		}
	}
	return nil
}

func checkAnnotations(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var (
		sawUp, sawDown bool
		open           int
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		switch strings.TrimSpace(scanner.Text()) {
		case "-- +goose Up":
			sawUp = true
		case "-- +goose Down":
			if !sawUp {
				return errors.New(`"-- +goose Down" before "-- +goose Up"`)
			}
			sawDown = true
		case "-- +goose StatementBegin":
			open++
		case "-- +goose StatementEnd":
			open--
			if open < 0 {
				return errors.New("StatementEnd without StatementBegin")
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	switch {
	case !sawUp:
		return errors.New(`missing "-- +goose Up"`)
	case !sawDown:
		return errors.New(`missing "-- +goose Down"`)
	case open != 0:
		return errors.New("unterminated StatementBegin")
	}
	return nil
}
