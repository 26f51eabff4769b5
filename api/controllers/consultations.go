package controllers

import (
	"fmt"
	"net/http"

	"github.com/pawar-yoga/studio-backend/api/responses"
	"github.com/pawar-yoga/studio-backend/api/validators"
	"github.com/pawar-yoga/studio-backend/internal/consultations"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
	"github.com/pawar-yoga/studio-backend/pkg/types"
)

type submitConsultationRequest struct {
	Name    string `json:"name" validate:"max=100"`
	Contact string `json:"contact" validate:"max=100"`
	Notes   string `json:"notes" validate:"max=4000"`
}

// SubmitConsultation takes a visitor's consultation request from the public
// site.
func SubmitConsultation(svc consultationSubmitter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload submitConsultationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteOutcomeError(ctx, logg, w, err)
			return
		}

		id, err := svc.Submit(ctx, consultations.SubmitInput{
			Name:    payload.Name,
			Contact: payload.Contact,
			Notes:   payload.Notes,
		})
		if err != nil {
			responses.WriteOutcomeError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithField(ctx, "consultation_id", id), "consultation.submit.accepted")
		}
		responses.WriteOutcome(w, http.StatusOK, types.Outcome{
			Success: true,
			Message: "Request submitted successfully.",
		})
	}
}

// AdminHandleRequest accepts or rejects a consultation request.
func AdminHandleRequest(svc consultationReviewer, jar responses.FlashWriter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseIDParam(r, "id", "Request")
		if err != nil {
			responses.RedirectWithFlash(ctx, logg, w, r, jar, AdminHome, responses.ErrorFlash(err))
			return
		}

		status, err := svc.Transition(ctx, id, chiParam(r, "action"))
		if err != nil {
			responses.RedirectWithFlash(ctx, logg, w, r, jar, AdminHome, responses.ErrorFlash(err))
			return
		}
		msg := fmt.Sprintf("Request ID %d has been %s.", id, status)
		responses.RedirectWithFlash(ctx, logg, w, r, jar, AdminHome, responses.SuccessFlash(msg))
	}
}
