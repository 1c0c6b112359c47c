package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itops/helpdesk-service/internal/api/http/handlers"
	"github.com/itops/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/create-admin", cfg.Auth.CreateAdmin)
	authGroup.Get("/verify", cfg.AuthMiddleware.Handle, cfg.Auth.Verify)

	tickets := api.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Get("/types", cfg.Tickets.ListTypes)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Put("/:id", cfg.Tickets.Update)
	tickets.Delete("/:id", auth.RequireAdmin(), cfg.Tickets.Delete)

	stats := api.Group("/stats", cfg.AuthMiddleware.Handle)
	stats.Get("/", cfg.Stats.Overview)
	stats.Get("/dashboard", cfg.Stats.Dashboard)
}
