package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pawar-yoga/studio-backend/api/responses"
	"github.com/pawar-yoga/studio-backend/api/validators"
	"github.com/pawar-yoga/studio-backend/internal/auth"
	"github.com/pawar-yoga/studio-backend/internal/consultations"
	"github.com/pawar-yoga/studio-backend/internal/content"
	pkgerrors "github.com/pawar-yoga/studio-backend/pkg/errors"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
	"github.com/pawar-yoga/studio-backend/pkg/types"
)

type adminLoginRequest struct {
	Password string `json:"password" validate:"max=256"`
}

// AdminLogin checks the admin password and stores the signed session token
// in the admin cookie.
func AdminLogin(svc auth.Service, jar tokenJar, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload adminLoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteOutcomeError(ctx, logg, w, err)
			return
		}

		result, err := svc.Login(ctx, auth.LoginRequest{Password: payload.Password})
		if err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
				responses.WriteOutcome(w, http.StatusOK, types.Outcome{Success: false, Message: auth.IncorrectPasswordMessage})
				return
			}
			responses.WriteOutcomeError(ctx, logg, w, err)
			return
		}

		if err := jar.SetToken(w, r, result.Token); err != nil {
			responses.WriteOutcomeError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store admin cookie"))
			return
		}
		responses.WriteOutcome(w, http.StatusOK, types.Outcome{Success: true, Redirect: AdminHome})
	}
}

// AdminLogout ends the admin session and sends the browser home.
func AdminLogout(svc auth.Service, jar tokenJar, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := svc.Logout(ctx, jar.Token(r)); err != nil && logg != nil {
			logg.Error(ctx, "admin.logout.revoke_failed", err)
		}
		if err := jar.Clear(w, r); err != nil && logg != nil {
			logg.Error(ctx, "admin.logout.cookie_clear_failed", err)
		}
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

type dashboardResponse struct {
	Products []content.ProductDTO       `json:"products"`
	Gallery  []content.GalleryImageDTO  `json:"gallery"`
	Requests []consultations.RequestDTO `json:"requests"`
	Flash    *types.Flash               `json:"flash,omitempty"`
}

// AdminDashboard lists everything the administrator manages along with the
// notice left by the previous form action.
func AdminDashboard(items contentReader, requests consultationReviewer, flashes flashReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		products, err := items.ListProducts(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		gallery, err := items.ListGallery(ctx, "")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		reqs, err := requests.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		flash, err := flashes.PopFlash(w, r)
		if err != nil && logg != nil {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "admin.flash.pop_failed")
		}
		responses.WriteSuccess(w, dashboardResponse{
			Products: content.NewProductDTOs(products),
			Gallery:  content.NewGalleryImageDTOs(gallery),
			Requests: consultations.NewRequestDTOs(reqs),
			Flash:    flash,
		})
	}
}

func chiParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}
