package controllers

import (
	"net/http"

	"github.com/pawar-yoga/studio-backend/api/responses"
	"github.com/pawar-yoga/studio-backend/api/validators"
	"github.com/pawar-yoga/studio-backend/internal/content"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
)

// PublicListProducts lists products newest first.
func PublicListProducts(svc contentReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, content.NewProductDTOs(products))
	}
}

func PublicGetProduct(svc contentReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id", "Product")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, content.NewProductDTO(product))
	}
}

// PublicListGallery lists gallery images newest first, optionally narrowed
// to one category.
func PublicListGallery(svc contentReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := validators.QueryString(r, "category", 0)
		images, err := svc.ListGallery(r.Context(), category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, content.NewGalleryImageDTOs(images))
	}
}

func PublicGetGalleryImage(svc contentReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id", "Gallery image")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		image, err := svc.GetGalleryImage(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, content.NewGalleryImageDTO(image))
	}
}
