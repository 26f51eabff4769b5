package middleware

import (
	"context"

	pkgAuth "github.com/pawar-yoga/studio-backend/pkg/auth"
)

type adminClaimsKey struct{}

// WithAdminClaims stores the claims of the admin who passed the gate.
func WithAdminClaims(ctx context.Context, claims *pkgAuth.AdminClaims) context.Context {
	return context.WithValue(ctx, adminClaimsKey{}, claims)
}

// AdminClaimsFromContext returns the gate's claims, or nil outside the gate.
func AdminClaimsFromContext(ctx context.Context) *pkgAuth.AdminClaims {
	claims, _ := ctx.Value(adminClaimsKey{}).(*pkgAuth.AdminClaims)
	return claims
}

// AdminSessionFromContext returns the access id of the gated session, or "".
func AdminSessionFromContext(ctx context.Context) string {
	if claims := AdminClaimsFromContext(ctx); claims != nil {
		return claims.ID
	}
	return ""
}
