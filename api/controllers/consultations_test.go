package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawar-yoga/studio-backend/internal/consultations"
	"github.com/pawar-yoga/studio-backend/pkg/db/models"
	"github.com/pawar-yoga/studio-backend/pkg/enums"
	pkgerrors "github.com/pawar-yoga/studio-backend/pkg/errors"
	"github.com/pawar-yoga/studio-backend/pkg/types"
)

type stubConsultations struct {
	submitErr     error
	transitionErr error
	listErr       error

	submitted consultations.SubmitInput
	action    string
	id        uint64
	rows      []models.ConsultationRequest
}

func (s *stubConsultations) Submit(ctx context.Context, input consultations.SubmitInput) (uint64, error) {
	s.submitted = input
	if s.submitErr != nil {
		return 0, s.submitErr
	}
	return 3, nil
}

func (s *stubConsultations) Transition(ctx context.Context, id uint64, action string) (enums.ConsultationStatus, error) {
	s.id, s.action = id, action
	if s.transitionErr != nil {
		return "", s.transitionErr
	}
	status, _ := enums.ConsultationAction(action).TargetStatus()
	return status, nil
}

func (s *stubConsultations) List(ctx context.Context) ([]models.ConsultationRequest, error) {
	return s.rows, s.listErr
}

func decodeOutcome(t *testing.T, rec *httptest.ResponseRecorder) types.Outcome {
	t.Helper()
	var out types.Outcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestSubmitConsultation(t *testing.T) {
	svc := &stubConsultations{}
	req := httptest.NewRequest(http.MethodPost, "/submit-consultation", strings.NewReader(`{"name":"Asha","contact":"asha@example.com"}`))
	rec := httptest.NewRecorder()

	SubmitConsultation(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, types.Outcome{Success: true, Message: "Request submitted successfully."}, decodeOutcome(t, rec))
	assert.Equal(t, consultations.SubmitInput{Name: "Asha", Contact: "asha@example.com"}, svc.submitted)
}

func TestSubmitConsultationValidationFailure(t *testing.T) {
	svc := &stubConsultations{submitErr: pkgerrors.New(pkgerrors.CodeValidation, "Name and Contact are required.")}
	req := httptest.NewRequest(http.MethodPost, "/submit-consultation", strings.NewReader(`{"name":"Asha"}`))
	rec := httptest.NewRecorder()

	SubmitConsultation(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, types.Outcome{Success: false, Message: "Name and Contact are required."}, decodeOutcome(t, rec))
}

func TestSubmitConsultationContactTooLong(t *testing.T) {
	svc := &stubConsultations{}
	body := `{"name":"Asha","contact":"` + strings.Repeat("c", 101) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/submit-consultation", strings.NewReader(body))
	rec := httptest.NewRecorder()

	SubmitConsultation(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, types.Outcome{Success: false, Message: "Contact must be at most 100 characters"}, decodeOutcome(t, rec))
	assert.Empty(t, svc.submitted.Contact)
}

func TestSubmitConsultationStorageFailure(t *testing.T) {
	svc := &stubConsultations{submitErr: pkgerrors.Wrap(pkgerrors.CodeStorage, errors.New("disk full"), "insert consultation request")}
	req := httptest.NewRequest(http.MethodPost, "/submit-consultation", strings.NewReader(`{"name":"Asha","contact":"a"}`))
	rec := httptest.NewRecorder()

	SubmitConsultation(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	out := decodeOutcome(t, rec)
	assert.False(t, out.Success)
	assert.NotContains(t, out.Message, "disk full")
}

func TestSubmitConsultationMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/submit-consultation", strings.NewReader(`not json`))
	rec := httptest.NewRecorder()

	SubmitConsultation(&stubConsultations{}, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeOutcome(t, rec).Success)
}

func TestAdminHandleRequest(t *testing.T) {
	svc := &stubConsultations{}
	jar := &recordingJar{}
	req := withURLParams(httptest.NewRequest(http.MethodPost, "/handle-request/accept/4", nil), "action", "accept", "id", "4")
	rec := httptest.NewRecorder()

	AdminHandleRequest(svc, jar, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, AdminHome, rec.Header().Get("Location"))
	assert.Equal(t, uint64(4), svc.id)
	assert.Equal(t, types.Flash{Message: "Request ID 4 has been accepted.", Type: types.FlashSuccess}, jar.last(t))
}

func TestAdminHandleRequestInvalidAction(t *testing.T) {
	svc := &stubConsultations{transitionErr: pkgerrors.New(pkgerrors.CodeInvalidAction, "Invalid action.")}
	jar := &recordingJar{}
	req := withURLParams(httptest.NewRequest(http.MethodPost, "/handle-request/maybe/4", nil), "action", "maybe", "id", "4")

	AdminHandleRequest(svc, jar, testLogger()).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "maybe", svc.action)
	assert.Equal(t, types.Flash{Message: "Invalid action.", Type: types.FlashError}, jar.last(t))
}
