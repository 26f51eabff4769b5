package controllers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/pawar-yoga/studio-backend/pkg/logger"
	"github.com/pawar-yoga/studio-backend/pkg/types"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

type recordingJar struct {
	flashes []types.Flash
	token   string
	cleared bool
	popped  *types.Flash
}

func (j *recordingJar) AddFlash(w http.ResponseWriter, r *http.Request, flash types.Flash) error {
	j.flashes = append(j.flashes, flash)
	return nil
}

func (j *recordingJar) PopFlash(w http.ResponseWriter, r *http.Request) (*types.Flash, error) {
	f := j.popped
	j.popped = nil
	return f, nil
}

func (j *recordingJar) Token(r *http.Request) string { return j.token }

func (j *recordingJar) SetToken(w http.ResponseWriter, r *http.Request, token string) error {
	j.token = token
	return nil
}

func (j *recordingJar) Clear(w http.ResponseWriter, r *http.Request) error {
	j.token = ""
	j.cleared = true
	return nil
}

func (j *recordingJar) last(t *testing.T) types.Flash {
	t.Helper()
	if len(j.flashes) == 0 {
		t.Fatal("expected a flash message")
	}
	return j.flashes[len(j.flashes)-1]
}

func withURLParams(req *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func multipartRequest(t *testing.T, target string, fields map[string]string, filename string, body []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if filename != "" {
		part, err := mw.CreateFormFile(imageField, filename)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(body); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
