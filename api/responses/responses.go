package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/pawar-yoga/studio-backend/pkg/errors"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
	"github.com/pawar-yoga/studio-backend/pkg/types"
)

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.SuccessEnvelope{Data: data})
}

// WriteOutcome writes the flat {success, message} body used by the public
// form endpoints.
func WriteOutcome(w http.ResponseWriter, status int, outcome types.Outcome) {
	writeJSON(w, status, outcome)
}

func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed := typedError(err)
	meta := pkgerrors.MetadataFor(typed.Code())

	payload := types.ErrorEnvelope{
		Error: types.APIError{
			Code:    string(typed.Code()),
			Message: PublicMessage(typed),
		},
	}
	if meta.DetailsAllowed {
		if details := typed.Details(); details != nil {
			payload.Error.Details = details
		}
	}

	logError(ctx, logg, typed)
	writeJSON(w, meta.HTTPStatus, payload)
}

// WriteOutcomeError reports err in the {success:false, message} shape with
// the status of its code.
func WriteOutcomeError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed := typedError(err)
	logError(ctx, logg, typed)
	WriteOutcome(w, pkgerrors.MetadataFor(typed.Code()).HTTPStatus, types.Outcome{
		Success: false,
		Message: PublicMessage(typed),
	})
}

// PublicMessage is the text a caller may see for err. Database and file
// storage failures name the failed step without exposing driver output.
func PublicMessage(err error) string {
	typed := typedError(err)
	meta := pkgerrors.MetadataFor(typed.Code())
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeInvalidFile,
		pkgerrors.CodeInvalidAction,
		pkgerrors.CodeUnauthorized,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeRateLimit:
		if m := typed.Message(); m != "" {
			return m
		}
	case pkgerrors.CodeStorage:
		if m := typed.Message(); m != "" {
			return "Database error: " + m
		}
		return "Database error"
	case pkgerrors.CodeFileStorage:
		if m := typed.Message(); m != "" {
			return "File storage error: " + m
		}
		return "File storage error"
	}
	return meta.PublicMessage
}

func typedError(err error) *pkgerrors.Error {
	if err == nil {
		err = errors.New("unknown error")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	return typed
}

func logError(ctx context.Context, logg *logger.Logger, err *pkgerrors.Error) {
	if logg == nil {
		return
	}
	fields := pkgerrors.Dump(err).Fields()
	ctx = logg.WithFields(ctx, fields)
	switch err.Code() {
	case pkgerrors.CodeStorage, pkgerrors.CodeFileStorage, pkgerrors.CodeInternal, pkgerrors.CodeDependency:
		logg.Error(ctx, "request.error", err)
	default:
		logg.Warn(ctx, "request.rejected")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
