package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/itops/helpdesk-service/internal/domain"
	"github.com/itops/helpdesk-service/internal/repository"
	"github.com/itops/helpdesk-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	User *domain.User
}

// Username returns the caller identity used for created_by/updated_by stamps.
func (p *Principal) Username() string {
	if p == nil || p.User == nil {
		return domain.CreatedByExternal
	}
	return p.User.Username
}

// Role returns the caller's role.
func (p *Principal) Role() domain.UserRole {
	if p == nil || p.User == nil {
		return ""
	}
	return p.User.Role
}

// AuthMiddleware validates bearer tokens and loads the user row behind them.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return util.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return util.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return util.NewUnauthorized("invalid or expired token")
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewUnauthorized("user not found")
		}
		return util.MapError(err)
	}
	if !user.IsActive {
		return util.NewUnauthorized("user inactive")
	}

	c.Locals(principalKey, &Principal{User: user})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
