package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itops/helpdesk-service/internal/api/dto"
	"github.com/itops/helpdesk-service/internal/service"
)

// StatsHandler exposes the dashboard aggregates.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{service: statsService}
}

// Overview handles GET /api/stats/.
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.service.Overview(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewStatsResponse(overview))
}

// Dashboard handles GET /api/stats/dashboard.
func (h *StatsHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.service.Dashboard(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDashboardResponse(stats))
}
