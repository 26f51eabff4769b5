package content

import (
	"context"
	"strings"

	"github.com/pawar-yoga/studio-backend/internal/repo"
	"github.com/pawar-yoga/studio-backend/pkg/db/models"
	"gorm.io/gorm"
)

// ProductRepository persists catalog rows.
type ProductRepository struct {
	repo.Base
}

// NewProductRepository binds a product repository to the provided GORM DB.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{Base: repo.NewBase(db)}
}

// WithTx returns a repository that runs inside tx.
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return NewProductRepository(tx)
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return r.DB(ctx).Create(p).Error
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint64) (*models.Product, error) {
	return repo.FindByID[models.Product](ctx, r.Base, id)
}

// List returns every product, newest id first.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	if err := r.DB(ctx).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes the row and reports how many rows went away.
func (r *ProductRepository) Delete(ctx context.Context, id uint64) (int64, error) {
	return repo.DeleteByID[models.Product](ctx, r.Base, id)
}

// GalleryRepository persists gallery rows.
type GalleryRepository struct {
	repo.Base
}

// NewGalleryRepository binds a gallery repository to the provided GORM DB.
func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{Base: repo.NewBase(db)}
}

// WithTx returns a repository that runs inside tx.
func (r *GalleryRepository) WithTx(tx *gorm.DB) *GalleryRepository {
	return NewGalleryRepository(tx)
}

func (r *GalleryRepository) Create(ctx context.Context, g *models.GalleryImage) error {
	return r.DB(ctx).Create(g).Error
}

func (r *GalleryRepository) FindByID(ctx context.Context, id uint64) (*models.GalleryImage, error) {
	return repo.FindByID[models.GalleryImage](ctx, r.Base, id)
}

// List returns gallery rows newest id first, optionally narrowed to one
// category. The "all" category is a label, not a wildcard.
func (r *GalleryRepository) List(ctx context.Context, category string) ([]models.GalleryImage, error) {
	query := r.DB(ctx).Order("id DESC")
	if c := strings.TrimSpace(category); c != "" {
		query = query.Where("category = ?", c)
	}
	var rows []models.GalleryImage
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes the row and reports how many rows went away.
func (r *GalleryRepository) Delete(ctx context.Context, id uint64) (int64, error) {
	return repo.DeleteByID[models.GalleryImage](ctx, r.Base, id)
}
