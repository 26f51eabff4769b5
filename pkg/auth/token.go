package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pawar-yoga/studio-backend/pkg/config"
)

var (
	jwtSigningMethod = jwt.SigningMethodHS256

	errNotAdminToken = errors.New("token is not an admin session")
)

// clockSkew tolerates small clock differences between API replicas.
const clockSkew = 5 * time.Second

func checkSigningConfig(cfg config.JWTConfig) error {
	switch {
	case cfg.Secret == "":
		return errors.New("jwt secret is required")
	case cfg.Issuer == "":
		return errors.New("jwt issuer is required")
	case cfg.SessionTTL() <= 0:
		return errors.New("jwt expiration minutes must be positive")
	}
	return nil
}

// MintAdminToken signs a token for the admin session accessID. The access
// id is carried as the jti so the session registry can revoke it.
func MintAdminToken(cfg config.JWTConfig, now time.Time, accessID string) (string, error) {
	if err := checkSigningConfig(cfg); err != nil {
		return "", err
	}
	jti := strings.TrimSpace(accessID)
	if jti == "" {
		return "", errors.New("access id is required")
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, AdminClaims{
		Role: AdminSubject,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    cfg.Issuer,
			Subject:   AdminSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.SessionTTL())),
		},
	}).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseAdminToken verifies signature, issuer, subject and expiry. Tokens
// without an expiry are refused.
func ParseAdminToken(cfg config.JWTConfig, tokenString string) (*AdminClaims, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithSubject(AdminSubject),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	)
	claims := &AdminClaims{}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(cfg.Secret), nil
	}); err != nil {
		return nil, err
	}
	if claims.Role != AdminSubject || claims.ID == "" {
		return nil, errNotAdminToken
	}
	return claims, nil
}
