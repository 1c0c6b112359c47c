package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/itops/helpdesk-service/internal/api/dto"
	"github.com/itops/helpdesk-service/internal/auth"
	"github.com/itops/helpdesk-service/internal/service"
	"github.com/itops/helpdesk-service/pkg/util"
)

// TicketsHandler manages the ticket CRUD endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs the handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// ListTypes handles GET /api/tickets/types.
func (h *TicketsHandler) ListTypes(c *fiber.Ctx) error {
	types, err := h.service.ListTypes(c.Context(), false)
	if err != nil {
		return err
	}
	items := make([]dto.TicketTypeResponse, 0, len(types))
	for _, t := range types {
		items = append(items, dto.NewTicketTypeResponse(t))
	}
	return c.JSON(items)
}

// List handles GET /api/tickets/. The full inbox in canonical order, no
// server-side paging.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	tickets, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i]))
	}
	return c.JSON(items)
}

// Create handles POST /api/tickets/.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.Create(c.Context(), principal.Username(), service.TicketCreateInput{
		Type:           req.Type,
		Title:          req.Title,
		Description:    req.Description,
		Requester:      req.Requester,
		RequesterEmail: req.RequesterEmail,
		Urgency:        req.Urgency,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewTicketResponse(ticket))
}

// Update handles PUT /api/tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return util.NewValidationError("invalid ticket id", nil)
	}

	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.Update(c.Context(), principal.Username(), int64(id), req.ToUpdate())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// Delete handles DELETE /api/tickets/:id. Admin role only.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return util.NewValidationError("invalid ticket id", nil)
	}

	if err := h.service.Delete(c.Context(), principal.Role(), principal.Username(), int64(id)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "ticket deleted"})
}
