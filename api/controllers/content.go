package controllers

import (
	"fmt"
	"net/http"

	"github.com/pawar-yoga/studio-backend/api/responses"
	"github.com/pawar-yoga/studio-backend/api/validators"
	"github.com/pawar-yoga/studio-backend/internal/content"
	"github.com/pawar-yoga/studio-backend/pkg/enums"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
)

const imageField = "image"

// AdminCreateProduct handles the add-product form.
func AdminCreateProduct(svc contentWriter, jar responses.FlashWriter, maxUpload int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		upload, release, err := readUpload(w, r, maxUpload)
		if err != nil {
			responses.RedirectWithFlash(ctx, logg, w, r, jar, AdminHome, responses.ErrorFlash(err))
			return
		}
		defer release()

		meta := content.Metadata{
			Name:        validators.FormValue(r, "name"),
			Description: validators.FormValue(r, "description"),
			Price:       validators.FormValue(r, "price"),
		}
		if _, err := svc.Create(ctx, enums.ContentKindProduct, meta, upload); err != nil {
			responses.RedirectWithFlash(ctx, logg, w, r, jar, AdminHome, responses.ErrorFlash(err))
			return
		}
		msg := fmt.Sprintf("Product '%s' added successfully!", meta.Name)
		responses.RedirectWithFlash(ctx, logg, w, r, jar, AdminHome, responses.SuccessFlash(msg))
	}
}

// AdminCreateGalleryImage handles the add-gallery-image form.
func AdminCreateGalleryImage(svc contentWriter, jar responses.FlashWriter, maxUpload int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		upload, release, err := readUpload(w, r, maxUpload)
		if err != nil {
			responses.RedirectWithFlash(ctx, logg, w, r, jar, AdminHome, responses.ErrorFlash(err))
			return
		}
		defer release()

		meta := content.Metadata{
			Title:    validators.FormValue(r, "title"),
			Category: validators.FormValue(r, "category"),
		}
		if _, err := svc.Create(ctx, enums.ContentKindGallery, meta, upload); err != nil {
			responses.RedirectWithFlash(ctx, logg, w, r, jar, AdminHome, responses.ErrorFlash(err))
			return
		}
		responses.RedirectWithFlash(ctx, logg, w, r, jar, AdminHome, responses.SuccessFlash("Gallery image added successfully!"))
	}
}

// AdminDeleteProduct removes a product and its image.
func AdminDeleteProduct(svc contentWriter, jar responses.FlashWriter, logg *logger.Logger) http.HandlerFunc {
	return adminDelete(svc, jar, enums.ContentKindProduct, "Product ID %d has been deleted.", logg)
}

// AdminDeleteGalleryImage removes a gallery image and its file.
func AdminDeleteGalleryImage(svc contentWriter, jar responses.FlashWriter, logg *logger.Logger) http.HandlerFunc {
	return adminDelete(svc, jar, enums.ContentKindGallery, "Gallery image ID %d has been deleted.", logg)
}

func adminDelete(svc contentWriter, jar responses.FlashWriter, kind enums.ContentKind, done string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseIDParam(r, "id", kind.Label())
		if err == nil {
			err = svc.Delete(ctx, kind, id)
		}
		if err != nil {
			responses.RedirectWithFlash(ctx, logg, w, r, jar, AdminHome, responses.ErrorFlash(err))
			return
		}
		responses.RedirectWithFlash(ctx, logg, w, r, jar, AdminHome, responses.SuccessFlash(fmt.Sprintf(done, id)))
	}
}

// readUpload parses the multipart form and returns its image part. A form
// without one yields a nil upload, which the manager rejects.
func readUpload(w http.ResponseWriter, r *http.Request, maxUpload int64) (*content.Upload, func(), error) {
	if err := validators.ParseMultipartForm(w, r, maxUpload); err != nil {
		return nil, func() {}, err
	}
	release := func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}
	part, err := validators.FormFileField(r, imageField)
	if err != nil {
		release()
		return nil, func() {}, err
	}
	if part == nil {
		return nil, release, nil
	}
	return &content.Upload{Filename: part.Filename, Body: part.Body}, func() {
		_ = part.Close()
		release()
	}, nil
}
