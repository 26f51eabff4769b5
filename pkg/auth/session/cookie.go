package session

import (
	"errors"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/pawar-yoga/studio-backend/pkg/config"
	"github.com/pawar-yoga/studio-backend/pkg/types"
)

const (
	CookieName = "yoga_admin"

	tokenKey       = "token"
	flashKeyPrefix = "flash"
)

// CookieJar reads and writes the signed admin cookie. It carries the admin
// access token and the one-shot flash message shown on the next dashboard
// render.
type CookieJar struct {
	store sessions.Store
}

// NewCookieJar builds a jar signed with the configured cookie secret.
func NewCookieJar(cfg config.AdminConfig, ttlSeconds int) (*CookieJar, error) {
	if len(cfg.CookieSecret) < 16 {
		return nil, errors.New("admin cookie secret must be at least 16 bytes")
	}
	store := sessions.NewCookieStore([]byte(cfg.CookieSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   ttlSeconds,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieJar{store: store}, nil
}

func (j *CookieJar) get(r *http.Request) *sessions.Session {
	// A tampered or stale cookie yields a fresh session alongside the error.
	sess, _ := j.store.Get(r, CookieName)
	return sess
}

// Token returns the admin access token stored in the cookie.
func (j *CookieJar) Token(r *http.Request) string {
	token, _ := j.get(r).Values[tokenKey].(string)
	return token
}

// SetToken stores the admin access token.
func (j *CookieJar) SetToken(w http.ResponseWriter, r *http.Request, token string) error {
	sess := j.get(r)
	sess.Values[tokenKey] = token
	return sess.Save(r, w)
}

// Clear drops the token and any pending flash.
func (j *CookieJar) Clear(w http.ResponseWriter, r *http.Request) error {
	sess := j.get(r)
	sess.Options.MaxAge = -1
	sess.Values = map[any]any{}
	return sess.Save(r, w)
}

// AddFlash queues a flash message for the next dashboard render.
func (j *CookieJar) AddFlash(w http.ResponseWriter, r *http.Request, flash types.Flash) error {
	sess := j.get(r)
	// Only the latest outcome is shown.
	sess.Flashes(flashKeyPrefix + ":message")
	sess.Flashes(flashKeyPrefix + ":type")
	sess.AddFlash(flash.Message, flashKeyPrefix+":message")
	sess.AddFlash(string(flash.Type), flashKeyPrefix+":type")
	return sess.Save(r, w)
}

// PopFlash returns and removes the pending flash, if any.
func (j *CookieJar) PopFlash(w http.ResponseWriter, r *http.Request) (*types.Flash, error) {
	sess := j.get(r)
	messages := sess.Flashes(flashKeyPrefix + ":message")
	kinds := sess.Flashes(flashKeyPrefix + ":type")
	if len(messages) == 0 {
		return nil, nil
	}
	if err := sess.Save(r, w); err != nil {
		return nil, err
	}
	flash := &types.Flash{Type: types.FlashSuccess}
	flash.Message, _ = messages[len(messages)-1].(string)
	if len(kinds) > 0 {
		if kind, ok := kinds[len(kinds)-1].(string); ok {
			flash.Type = types.FlashType(kind)
		}
	}
	return flash, nil
}
