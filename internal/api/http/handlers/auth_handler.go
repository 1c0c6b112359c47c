package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/itops/helpdesk-service/internal/api/dto"
	"github.com/itops/helpdesk-service/internal/auth"
	"github.com/itops/helpdesk-service/internal/service"
	"github.com/itops/helpdesk-service/pkg/util"
)

// AuthHandler exposes session endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return util.NewValidationError("username and password are required", nil)
	}

	user, token, _, err := h.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        dto.NewUserResponse(user),
	})
}

// Verify handles GET /api/auth/verify. The auth middleware has already
// validated the token and loaded the user.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return util.NewUnauthorized("authentication required")
	}
	return c.JSON(dto.VerifyResponse{
		Valid: true,
		User:  dto.NewUserResponse(principal.User),
	})
}

// CreateAdmin handles POST /api/auth/create-admin, the one-shot setup
// endpoint for the initial admin account.
func (h *AuthHandler) CreateAdmin(c *fiber.Ctx) error {
	user, err := h.authService.BootstrapAdmin(c.Context())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "admin created",
		"user":    dto.NewUserResponse(user),
	})
}
