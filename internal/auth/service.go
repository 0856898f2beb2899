package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/sweetquest/sweetquest-backend/pkg/auth"
	"github.com/sweetquest/sweetquest-backend/pkg/config"
	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
	"github.com/sweetquest/sweetquest-backend/pkg/security"
)

// Service authenticates dashboard operators.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, jti string) error
}

// LoginInput carries the credentials for a login attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is a successful authentication.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     models.AdminUser
}

type sessionRegistrar interface {
	Create(ctx context.Context, jti string) error
	Revoke(ctx context.Context, jti string) error
}

// ServiceParams groups dependencies for the auth service.
type ServiceParams struct {
	Repo     Repository
	Sessions sessionRegistrar
	JWT      config.JWTConfig
	Now      func() time.Time
}

type service struct {
	repo     Repository
	sessions sessionRegistrar
	jwt      config.JWTConfig
	now      func() time.Time
}

// NewService constructs an auth service.
func NewService(params ServiceParams) (*service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "admin repo required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session registrar required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, sessions: params.Sessions, jwt: params.JWT, now: now}, nil
}

// dummyHash is verified against when the email is unknown, so that both
// failure paths cost one argon2 derivation.
const dummyHash = "$argon2id$v=19$m=65536,t=3,p=2$c3dlZXRxdWVzdC1kZWNveQ$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Login verifies credentials and mints a session-backed access token.
// Unknown accounts and wrong passwords are indistinguishable to the caller,
// in response and in timing.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	admin, err := s.repo.FindAdminByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find admin")
	}
	if admin == nil {
		_, _ = security.VerifyPassword(input.Password, dummyHash)
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	matches, err := security.VerifyPassword(input.Password, admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !matches {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := s.now().UTC()
	jti := uuid.NewString()
	token, err := pkgauth.MintAccessToken(s.jwt, now, pkgauth.AccessTokenPayload{
		AdminID: admin.ID,
		Email:   admin.Email,
		JTI:     jti,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	if err := s.sessions.Create(ctx, jti); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register session")
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(s.jwt.AccessTokenTTL()),
		Admin:     *admin,
	}, nil
}

// Logout revokes the session behind the token's jti.
func (s *service) Logout(ctx context.Context, jti string) error {
	if strings.TrimSpace(jti) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "token id is required")
	}
	if err := s.sessions.Revoke(ctx, jti); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}
