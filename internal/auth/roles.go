package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itops/helpdesk-service/internal/domain"
	"github.com/itops/helpdesk-service/pkg/util"
)

// RequireAdmin ensures the authenticated caller holds the admin role. The
// ticket service re-checks the role on delete; this gate just fails fast at
// the route boundary.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return util.NewUnauthorized("authentication required")
		}
		if principal.User.Role != domain.UserRoleAdmin {
			return util.NewForbidden("admin role required")
		}
		return c.Next()
	}
}
