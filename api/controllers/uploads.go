package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pawar-yoga/studio-backend/api/responses"
	"github.com/pawar-yoga/studio-backend/pkg/blobstore"
	pkgerrors "github.com/pawar-yoga/studio-backend/pkg/errors"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
)

type blobOpener interface {
	Open(ctx context.Context, name string) (*blobstore.Object, error)
}

// ServeUpload streams a stored file by its exact name.
func ServeUpload(store blobOpener, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "filename")
		obj, err := store.Open(r.Context(), name)
		if err != nil {
			if errors.Is(err, blobstore.ErrNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "file not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open upload"))
			return
		}
		defer obj.Close()

		w.Header().Set("Content-Type", obj.ContentType)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		http.ServeContent(w, r, obj.Name, obj.ModTime, obj)
	}
}
