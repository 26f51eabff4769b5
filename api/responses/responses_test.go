package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/pawar-yoga/studio-backend/pkg/errors"
	"github.com/pawar-yoga/studio-backend/pkg/types"
)

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"hello": "world"})

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}

	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode success envelope: %v", err)
	}
	if body.Data.(map[string]any)["hello"] != "world" {
		t.Fatalf("unexpected payload %v", body.Data)
	}
}

func TestWriteErrorMapsTypedError(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "bad input").
		WithDetails(map[string]string{"field": "demo"})
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
	if body.Error.Message != "bad input" {
		t.Fatalf("unexpected message %s", body.Error.Message)
	}
	if body.Error.Details == nil {
		t.Fatalf("expected details in public payload")
	}
}

func TestWriteErrorDefaultsToInternalForUntrustedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("boom"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeInternal) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
	if body.Error.Message != "internal server error" {
		t.Fatalf("internal error text leaked: %s", body.Error.Message)
	}
}

func TestWriteOutcomeError(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{pkgerrors.New(pkgerrors.CodeValidation, "Name and Contact are required."), http.StatusBadRequest, "Name and Contact are required."},
		{pkgerrors.Wrap(pkgerrors.CodeStorage, errors.New("pq: relation missing"), "insert consultation request"), http.StatusInternalServerError, "Database error: insert consultation request"},
		{pkgerrors.Wrap(pkgerrors.CodeFileStorage, errors.New("open uploads/x.png: no space left on device"), "save upload"), http.StatusInternalServerError, "File storage error: save upload"},
		{pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"), http.StatusTooManyRequests, "rate limit exceeded"},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		WriteOutcomeError(context.Background(), nil, w, c.err)
		if w.Code != c.wantStatus {
			t.Fatalf("expected %d, got %d", c.wantStatus, w.Code)
		}
		var body types.Outcome
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode outcome: %v", err)
		}
		if body.Success || body.Message != c.wantMsg {
			t.Fatalf("unexpected outcome %+v", body)
		}
	}
}

type recordingJar struct {
	flash *types.Flash
}

func (j *recordingJar) AddFlash(w http.ResponseWriter, r *http.Request, flash types.Flash) error {
	j.flash = &flash
	return nil
}

func TestRedirectWithFlash(t *testing.T) {
	jar := &recordingJar{}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/delete-product/3", nil)

	err := pkgerrors.New(pkgerrors.CodeNotFound, "Product ID 3 not found")
	RedirectWithFlash(r.Context(), nil, w, r, jar, "/admin", ErrorFlash(err))

	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin" {
		t.Fatalf("unexpected location %s", loc)
	}
	if jar.flash == nil || jar.flash.Type != types.FlashError || jar.flash.Message != "Product ID 3 not found" {
		t.Fatalf("unexpected flash %+v", jar.flash)
	}
}
