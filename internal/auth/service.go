package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgAuth "github.com/pawar-yoga/studio-backend/pkg/auth"
	"github.com/pawar-yoga/studio-backend/pkg/config"
	pkgerrors "github.com/pawar-yoga/studio-backend/pkg/errors"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
	"github.com/pawar-yoga/studio-backend/pkg/security"
)

// IncorrectPasswordMessage is shown to a visitor who fails the admin login.
const IncorrectPasswordMessage = "Incorrect Password"

// Service defines the admin session behavior needed by the controllers and
// the access gate.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Authorize(ctx context.Context, token string) (*pkgAuth.AdminClaims, error)
}

type sessionManager interface {
	Open(ctx context.Context) (string, error)
	Revoke(ctx context.Context, accessID string) error
	HasSession(ctx context.Context, accessID string) (bool, error)
}

type service struct {
	session      sessionManager
	passwordHash string
	jwtCfg       config.JWTConfig
	logg         *logger.Logger
	now          func() time.Time
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	SessionManager sessionManager
	AdminConfig    config.AdminConfig
	JWTConfig      config.JWTConfig
	Logger         *logger.Logger
}

// NewService constructs the admin login service.
func NewService(params ServiceParams) (Service, error) {
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if strings.TrimSpace(params.AdminConfig.PasswordHash) == "" {
		return nil, fmt.Errorf("admin password hash is required")
	}
	if err := security.ValidateHash(params.AdminConfig.PasswordHash); err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		session:      params.SessionManager,
		passwordHash: params.AdminConfig.PasswordHash,
		jwtCfg:       params.JWTConfig,
		logg:         params.Logger,
		now:          time.Now,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	ok, err := security.VerifyPassword(req.Password, s.passwordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify admin password")
	}
	if !ok {
		s.logg.Warn(ctx, "admin.login_rejected")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, IncorrectPasswordMessage)
	}

	accessID, err := s.session.Open(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open admin session")
	}

	now := s.now()
	token, err := pkgAuth.MintAdminToken(s.jwtCfg, now, accessID)
	if err != nil {
		_ = s.session.Revoke(ctx, accessID)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint admin token")
	}

	s.logg.Info(s.logg.WithSessionID(ctx, accessID), "admin.login")
	return &LoginResult{
		Token:     token,
		AccessID:  accessID,
		ExpiresAt: now.Add(s.jwtCfg.SessionTTL()),
	}, nil
}

// Logout revokes the session behind token. Unparseable or expired tokens
// have nothing left to revoke.
func (s *service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	claims, err := pkgAuth.ParseAdminToken(s.jwtCfg, token)
	if err != nil {
		return nil
	}
	if err := s.session.Revoke(ctx, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke admin session")
	}
	s.logg.Info(s.logg.WithSessionID(ctx, claims.ID), "admin.logout")
	return nil
}

func (s *service) Authorize(ctx context.Context, token string) (*pkgAuth.AdminClaims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin login required")
	}
	claims, err := pkgAuth.ParseAdminToken(s.jwtCfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid admin token")
	}
	active, err := s.session.HasSession(ctx, claims.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check admin session")
	}
	if !active {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin session revoked")
	}
	return claims, nil
}
