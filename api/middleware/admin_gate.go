package middleware

import (
	"context"
	"net/http"

	"github.com/pawar-yoga/studio-backend/api/responses"
	pkgAuth "github.com/pawar-yoga/studio-backend/pkg/auth"
	pkgerrors "github.com/pawar-yoga/studio-backend/pkg/errors"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
)

// AdminAuthorizer validates the token held in the admin cookie.
type AdminAuthorizer interface {
	Authorize(ctx context.Context, token string) (*pkgAuth.AdminClaims, error)
}

// TokenSource reads the admin token from the request.
type TokenSource interface {
	Token(r *http.Request) string
}

// AdminGate lets only logged-in administrators through. Anyone else is sent
// to redirectTo; a session store outage is a 503.
func AdminGate(authz AdminAuthorizer, tokens TokenSource, redirectTo string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			claims, err := authz.Authorize(ctx, tokens.Token(r))
			if err != nil {
				if pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
					if logg != nil {
						logg.Warn(ctx, "admin.gate.denied")
					}
					http.Redirect(w, r, redirectTo, http.StatusFound)
					return
				}
				responses.WriteError(ctx, logg, w, err)
				return
			}

			ctx = WithAdminClaims(ctx, claims)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, claims.ID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
