package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pawar-yoga/studio-backend/internal/repo"
	"github.com/pawar-yoga/studio-backend/pkg/blobstore"
	"github.com/pawar-yoga/studio-backend/pkg/db/models"
	"github.com/pawar-yoga/studio-backend/pkg/enums"
	pkgerrors "github.com/pawar-yoga/studio-backend/pkg/errors"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
	"github.com/pawar-yoga/studio-backend/pkg/metrics"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

type blobStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, name string) error
}

type txRunner interface {
	DB() *gorm.DB
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Manager creates and deletes content items. Each item is one stored file
// plus one row; the file is written before the row and removed before it.
type Manager interface {
	Create(ctx context.Context, kind enums.ContentKind, meta Metadata, file *Upload) (uint64, error)
	Delete(ctx context.Context, kind enums.ContentKind, id uint64) error

	GetProduct(ctx context.Context, id uint64) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetGalleryImage(ctx context.Context, id uint64) (*models.GalleryImage, error)
	ListGallery(ctx context.Context, category string) ([]models.GalleryImage, error)
}

type manager struct {
	db       txRunner
	blobs    blobStore
	products *ProductRepository
	gallery  *GalleryRepository
	metrics  *metrics.StudioMetrics
	logg     *logger.Logger
}

// NewManager wires the content manager. metrics may be nil.
func NewManager(db txRunner, blobs blobStore, m *metrics.StudioMetrics, logg *logger.Logger) (Manager, error) {
	if db == nil {
		return nil, fmt.Errorf("db client required")
	}
	if blobs == nil {
		return nil, fmt.Errorf("blob store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &manager{
		db:       db,
		blobs:    blobs,
		products: NewProductRepository(db.DB()),
		gallery:  NewGalleryRepository(db.DB()),
		metrics:  m,
		logg:     logg,
	}, nil
}

// row is the pending insert for one kind.
type row struct {
	insert   func(ctx context.Context, tx *gorm.DB, filename string) (uint64, error)
	describe string
}

func (m *manager) Create(ctx context.Context, kind enums.ContentKind, meta Metadata, file *Upload) (uint64, error) {
	started := time.Now()
	defer func() { m.metrics.ObserveDuration("content.create", time.Since(started)) }()

	id, err := m.create(ctx, kind, meta, file)
	if err != nil {
		m.metrics.IncFailure("content.create", string(codeOf(err)))
		return 0, err
	}
	m.metrics.IncCreated(kind.String())
	return id, nil
}

func (m *manager) create(ctx context.Context, kind enums.ContentKind, meta Metadata, file *Upload) (uint64, error) {
	if !kind.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Invalid content kind")
	}
	if err := checkUpload(file); err != nil {
		return 0, err
	}
	pending, err := m.prepare(kind, meta)
	if err != nil {
		return 0, err
	}

	stored, err := m.blobs.Save(ctx, file.Filename, file.Body)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeFileStorage, err, "save upload")
	}
	ctx = m.logg.WithFields(ctx, map[string]any{"kind": kind.String(), "filename": stored})

	var id uint64
	err = m.db.WithTx(ctx, func(tx *gorm.DB) error {
		var insertErr error
		id, insertErr = pending.insert(ctx, tx, stored)
		return insertErr
	})
	if err != nil {
		err = m.compensate(ctx, stored, err)
		m.logg.Error(ctx, "content.create.insert_failed", err)
		return 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "insert "+pending.describe)
	}

	m.logg.Info(m.logg.WithField(ctx, "id", id), "content.created")
	return id, nil
}

// compensate removes a file whose row never made it in. A failed removal is
// folded into the insert error.
func (m *manager) compensate(ctx context.Context, stored string, insertErr error) error {
	removeErr := m.blobs.Remove(ctx, stored)
	m.metrics.IncOrphanCleanup(removeErr == nil)
	if removeErr != nil {
		return multierr.Append(insertErr, fmt.Errorf("remove orphaned file %q: %w", stored, removeErr))
	}
	return insertErr
}

func (m *manager) prepare(kind enums.ContentKind, meta Metadata) (row, error) {
	switch kind {
	case enums.ContentKindProduct:
		name, err := required("Name", meta.Name, MaxNameLen)
		if err != nil {
			return row{}, err
		}
		description, err := required("Description", meta.Description, 0)
		if err != nil {
			return row{}, err
		}
		price, err := parsePrice(meta.Price)
		if err != nil {
			return row{}, err
		}
		return row{
			describe: "product",
			insert: func(ctx context.Context, tx *gorm.DB, filename string) (uint64, error) {
				p := &models.Product{Name: name, Description: description, Price: price, ImageFilename: filename}
				if err := m.products.WithTx(tx).Create(ctx, p); err != nil {
					return 0, err
				}
				return p.ID, nil
			},
		}, nil
	case enums.ContentKindGallery:
		title, err := required("Title", meta.Title, MaxNameLen)
		if err != nil {
			return row{}, err
		}
		category := strings.TrimSpace(meta.Category)
		if category == "" {
			category = DefaultCategory
		}
		if err := checkLength("Category", category, MaxCategoryLen); err != nil {
			return row{}, err
		}
		return row{
			describe: "gallery image",
			insert: func(ctx context.Context, tx *gorm.DB, filename string) (uint64, error) {
				g := &models.GalleryImage{Title: title, Category: category, ImageFilename: filename}
				if err := m.gallery.WithTx(tx).Create(ctx, g); err != nil {
					return 0, err
				}
				return g.ID, nil
			},
		}, nil
	}
	return row{}, pkgerrors.New(pkgerrors.CodeValidation, "Invalid content kind")
}

func (m *manager) Delete(ctx context.Context, kind enums.ContentKind, id uint64) error {
	started := time.Now()
	defer func() { m.metrics.ObserveDuration("content.delete", time.Since(started)) }()

	if err := m.delete(ctx, kind, id); err != nil {
		m.metrics.IncFailure("content.delete", string(codeOf(err)))
		return err
	}
	m.metrics.IncDeleted(kind.String())
	return nil
}

func (m *manager) delete(ctx context.Context, kind enums.ContentKind, id uint64) error {
	var (
		filename string
		remove   func(tx *gorm.DB) (int64, error)
	)
	switch kind {
	case enums.ContentKindProduct:
		p, err := m.products.FindByID(ctx, id)
		if err != nil {
			return lookupError(err, kind, id)
		}
		filename = p.ImageFilename
		remove = func(tx *gorm.DB) (int64, error) { return m.products.WithTx(tx).Delete(ctx, id) }
	case enums.ContentKindGallery:
		g, err := m.gallery.FindByID(ctx, id)
		if err != nil {
			return lookupError(err, kind, id)
		}
		filename = g.ImageFilename
		remove = func(tx *gorm.DB) (int64, error) { return m.gallery.WithTx(tx).Delete(ctx, id) }
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "Invalid content kind")
	}

	ctx = m.logg.WithFields(ctx, map[string]any{"kind": kind.String(), "id": id, "filename": filename})

	// The row goes regardless of what happens to the file.
	if err := m.blobs.Remove(ctx, filename); err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			m.logg.Warn(ctx, "content.delete.file_missing")
		} else {
			m.logg.Error(ctx, "content.delete.file_remove_failed", err)
		}
	}

	err := m.db.WithTx(ctx, func(tx *gorm.DB) error {
		affected, err := remove(tx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "delete "+kind.Label())
		}
		if affected == 0 {
			return notFound(kind, id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logg.Info(ctx, "content.deleted")
	return nil
}

func (m *manager) GetProduct(ctx context.Context, id uint64) (*models.Product, error) {
	p, err := m.products.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, enums.ContentKindProduct, id)
	}
	return p, nil
}

func (m *manager) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := m.products.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list products")
	}
	return rows, nil
}

func (m *manager) GetGalleryImage(ctx context.Context, id uint64) (*models.GalleryImage, error) {
	g, err := m.gallery.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, enums.ContentKindGallery, id)
	}
	return g, nil
}

func (m *manager) ListGallery(ctx context.Context, category string) ([]models.GalleryImage, error) {
	rows, err := m.gallery.List(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list gallery")
	}
	return rows, nil
}

func lookupError(err error, kind enums.ContentKind, id uint64) error {
	if repo.IsNotFound(err) {
		return notFound(kind, id)
	}
	return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load "+kind.Label())
}

func notFound(kind enums.ContentKind, id uint64) error {
	return pkgerrors.Newf(pkgerrors.CodeNotFound, "%s ID %d not found", kind.Label(), id)
}

func codeOf(err error) pkgerrors.Code {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Code()
	}
	return pkgerrors.CodeInternal
}
