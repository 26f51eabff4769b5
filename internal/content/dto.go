package content

import (
	"path"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pawar-yoga/studio-backend/pkg/db/models"
)

// UploadsPath is the URL prefix stored files are served under.
const UploadsPath = "/uploads/"

// ProductDTO is the product payload returned to clients.
type ProductDTO struct {
	ID            uint64          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	ImageFilename string          `json:"image_filename"`
	ImageURL      string          `json:"image_url"`
	CreatedAt     time.Time       `json:"created_at"`
}

// GalleryImageDTO is the gallery payload returned to clients.
type GalleryImageDTO struct {
	ID            uint64    `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	ImageFilename string    `json:"image_filename"`
	ImageURL      string    `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewProductDTO(p *models.Product) *ProductDTO {
	return &ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		ImageFilename: p.ImageFilename,
		ImageURL:      imageURL(p.ImageFilename),
		CreatedAt:     p.CreatedAt,
	}
}

func NewProductDTOs(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewProductDTO(&rows[i]))
	}
	return out
}

func NewGalleryImageDTO(g *models.GalleryImage) *GalleryImageDTO {
	return &GalleryImageDTO{
		ID:            g.ID,
		Title:         g.Title,
		Category:      g.Category,
		ImageFilename: g.ImageFilename,
		ImageURL:      imageURL(g.ImageFilename),
		CreatedAt:     g.CreatedAt,
	}
}

func NewGalleryImageDTOs(rows []models.GalleryImage) []GalleryImageDTO {
	out := make([]GalleryImageDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewGalleryImageDTO(&rows[i]))
	}
	return out
}

func imageURL(filename string) string {
	return path.Join(UploadsPath, filename)
}
