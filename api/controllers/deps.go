package controllers

import (
	"context"
	"net/http"

	"github.com/pawar-yoga/studio-backend/internal/consultations"
	"github.com/pawar-yoga/studio-backend/internal/content"
	"github.com/pawar-yoga/studio-backend/pkg/db/models"
	"github.com/pawar-yoga/studio-backend/pkg/enums"
	"github.com/pawar-yoga/studio-backend/pkg/types"
)

// AdminHome is where every admin form action lands after it runs.
const AdminHome = "/admin"

type contentWriter interface {
	Create(ctx context.Context, kind enums.ContentKind, meta content.Metadata, file *content.Upload) (uint64, error)
	Delete(ctx context.Context, kind enums.ContentKind, id uint64) error
}

type contentReader interface {
	GetProduct(ctx context.Context, id uint64) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetGalleryImage(ctx context.Context, id uint64) (*models.GalleryImage, error)
	ListGallery(ctx context.Context, category string) ([]models.GalleryImage, error)
}

type consultationSubmitter interface {
	Submit(ctx context.Context, input consultations.SubmitInput) (uint64, error)
}

type consultationReviewer interface {
	Transition(ctx context.Context, id uint64, action string) (enums.ConsultationStatus, error)
	List(ctx context.Context) ([]models.ConsultationRequest, error)
}

type flashReader interface {
	PopFlash(w http.ResponseWriter, r *http.Request) (*types.Flash, error)
}

type tokenJar interface {
	Token(r *http.Request) string
	SetToken(w http.ResponseWriter, r *http.Request, token string) error
	Clear(w http.ResponseWriter, r *http.Request) error
}
