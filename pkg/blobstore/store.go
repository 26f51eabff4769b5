package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/teris-io/shortid"

	"github.com/pawar-yoga/studio-backend/pkg/logger"
)

const (
	maxNameAttempts = 5
	// maxNameBytes is the usual filesystem name limit and the width of the
	// image_filename column.
	maxNameBytes = 255
	maxExtBytes  = 16
)

// ErrNotFound is returned when a requested file is not stored.
var ErrNotFound = errors.New("blob not found")

// Store keeps uploaded files in one flat directory.
type Store struct {
	dir  string
	logg *logger.Logger
}

// Object is an opened stored file ready to be served.
type Object struct {
	io.ReadSeekCloser
	Name        string
	ContentType string
	Size        int64
	ModTime     time.Time
}

// New prepares the upload directory and returns a store rooted at it.
func New(dir string, logg *logger.Logger) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %q: %w", dir, err)
	}
	return &Store{dir: dir, logg: logg}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes r under a sanitized form of name and returns the stored name.
// Names already taken get a short unique suffix; existing files are never
// overwritten.
func (s *Store) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("payload is required")
	}
	base, ext := splitName(name)

	candidate := fitName(base, "", ext)
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		if attempt > 0 || base == "" {
			suffix, err := shortid.Generate()
			if err != nil {
				return "", fmt.Errorf("generate file suffix: %w", err)
			}
			candidate = fitName(base, suffix, ext)
		}
		if !IsSafeName(candidate) {
			continue
		}

		f, err := os.OpenFile(s.path(candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			if s.logg != nil {
				s.logg.Debug(s.logg.WithField(ctx, "file", candidate), "blobstore.name_taken")
			}
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create %q: %w", candidate, err)
		}

		if _, err := io.Copy(f, r); err != nil {
			_ = f.Close()
			_ = os.Remove(s.path(candidate))
			return "", fmt.Errorf("write %q: %w", candidate, err)
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(s.path(candidate))
			return "", fmt.Errorf("close %q: %w", candidate, err)
		}
		return candidate, nil
	}
	return "", fmt.Errorf("no free file name for %q after %d attempts", name, maxNameAttempts)
}

// Remove deletes a stored file. Missing files report ErrNotFound.
func (s *Store) Remove(ctx context.Context, name string) error {
	if !IsSafeName(name) {
		return ErrNotFound
	}
	if err := os.Remove(s.path(name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Exists reports whether a file is stored under name.
func (s *Store) Exists(name string) bool {
	if !IsSafeName(name) {
		return false
	}
	info, err := os.Stat(s.path(name))
	return err == nil && info.Mode().IsRegular()
}

// Open looks a file up by its exact stored name.
func (s *Store) Open(ctx context.Context, name string) (*Object, error) {
	if !IsSafeName(name) {
		return nil, ErrNotFound
	}
	f, err := os.Open(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, ErrNotFound
	}

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("detect content type: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &Object{
		ReadSeekCloser: f,
		Name:           name,
		ContentType:    mtype.String(),
		Size:           info.Size(),
		ModTime:        info.ModTime(),
	}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// fitName joins base, suffix and ext, cutting base so the result stays
// within maxNameBytes. Sanitized names are ASCII, so bytes are characters.
func fitName(base, suffix, ext string) string {
	if len(ext) > maxExtBytes {
		ext = ext[:maxExtBytes]
	}
	sep := ""
	if suffix != "" {
		sep = "-"
	}
	if room := maxNameBytes - len(sep) - len(suffix) - len(ext); len(base) > room {
		base = strings.TrimRight(base[:room], "._-")
	}
	if base == "" {
		return suffix + ext
	}
	return base + sep + suffix + ext
}

// splitName sanitizes name and separates it into base and extension. A name
// whose base sanitizes away keeps only its lowercased extension.
func splitName(name string) (string, string) {
	ext := Sanitize(Extension(name))
	if ext != "" {
		ext = "." + ext
	}
	clean := Sanitize(name)
	if clean == "" || filepath.Ext(clean) == "" {
		return "", ext
	}
	return strings.TrimSuffix(clean, filepath.Ext(clean)), filepath.Ext(clean)
}
