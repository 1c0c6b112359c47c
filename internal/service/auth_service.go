package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/itops/helpdesk-service/internal/auth"
	"github.com/itops/helpdesk-service/internal/config"
	"github.com/itops/helpdesk-service/internal/domain"
	"github.com/itops/helpdesk-service/internal/repository"
	"github.com/itops/helpdesk-service/pkg/util"
)

// AuthService coordinates login and the one-shot admin bootstrap.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	admin      config.AuthConfig
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTLHours),
		bcryptCost: cfg.BcryptCost,
		admin:      cfg,
	}
}

// Login authenticates by username and issues a session token. Unknown users,
// wrong passwords and inactive accounts all collapse into the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, util.MapError(err)
	}
	if !user.IsActive {
		return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, util.MapError(err)
	}
	return user, token, exp, nil
}

// BootstrapAdmin creates the initial admin account from configuration. It
// refuses when any admin already exists or when no bootstrap password is
// configured.
func (s *AuthService) BootstrapAdmin(ctx context.Context) (*domain.User, error) {
	exists, err := s.users.HasRole(ctx, domain.UserRoleAdmin)
	if err != nil {
		return nil, util.MapError(err)
	}
	if exists {
		return nil, util.NewValidationError("admin already exists", nil)
	}
	if s.admin.AdminPassword == "" {
		return nil, util.NewValidationError("admin bootstrap password not configured", nil)
	}

	hash, err := auth.HashPassword(s.admin.AdminPassword, s.bcryptCost)
	if err != nil {
		return nil, util.MapError(err)
	}

	user := &domain.User{
		Username:     s.admin.AdminUsername,
		Email:        s.admin.AdminEmail,
		PasswordHash: hash,
		Role:         domain.UserRoleAdmin,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, util.MapError(err)
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
