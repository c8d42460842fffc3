package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/fieldops-service/internal/auth"
	"github.com/spec-kit/fieldops-service/internal/config"
	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/identity"
	"github.com/spec-kit/fieldops-service/internal/repository"
	apperrors "github.com/spec-kit/fieldops-service/pkg/util"
)

// AuthService coordinates login against the identity gateway.
type AuthService struct {
	gateway    identity.Gateway
	staff      repository.StaffRepository
	tokenMgr   *auth.TokenManager
	adminEmail string
}

// LoginResult carries the issued token and the resolved caller.
type LoginResult struct {
	UID       string
	Name      string
	Email     string
	Role      domain.StaffRole
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, gateway identity.Gateway, staff repository.StaffRepository) *AuthService {
	return &AuthService{
		gateway:    gateway,
		staff:      staff,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		adminEmail: cfg.Auth.AdminEmail,
	}
}

// Login verifies credentials with the identity gateway, resolves the caller's
// directory role and issues a token. Callers without a directory record are
// rejected unless they are the bootstrap admin.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.gateway.VerifyCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.NewUpstreamFailure("identity provider rejected the request", err)
	}

	result := &LoginResult{UID: account.UID, Email: account.Email}

	staff, err := s.staff.GetByID(ctx, account.UID)
	switch {
	case err == nil:
		result.Name = staff.Name
		result.Role = staff.Role
	case err == pgx.ErrNoRows:
		if !s.isBootstrapAdmin(account.Email) {
			return nil, apperrors.NewUnauthorized("no directory record for caller")
		}
		result.Role = domain.StaffRoleAdmin
	default:
		return nil, apperrors.MapError(err)
	}

	if s.isBootstrapAdmin(account.Email) {
		result.Role = domain.StaffRoleAdmin
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.UID, account.Email, result.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	result.Token = token
	result.ExpiresAt = exp
	return result, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) isBootstrapAdmin(email string) bool {
	return s.adminEmail != "" && strings.EqualFold(email, s.adminEmail)
}
