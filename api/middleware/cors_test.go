package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pawar-yoga/studio-backend/pkg/config"
)

func TestCORSPreflight(t *testing.T) {
	handler := CORS(config.CORSConfig{
		AllowedOrigins: []string{"https://studio.example"},
		MaxAge:         5 * time.Minute,
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/submit-consultation", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	allowed := preflight("https://studio.example")
	assert.Equal(t, "https://studio.example", allowed.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "300", allowed.Header().Get("Access-Control-Max-Age"))
	assert.Empty(t, allowed.Header().Get("Access-Control-Allow-Credentials"))

	denied := preflight("https://elsewhere.example")
	assert.Empty(t, denied.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPassesSameOriginRequests(t *testing.T) {
	handler := CORS(config.CORSConfig{AllowedOrigins: []string{"https://studio.example"}})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCORSWithoutOriginsSendsNoHeaders(t *testing.T) {
	handler := CORS(config.CORSConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
