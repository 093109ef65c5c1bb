package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/facility-ticketing/internal/api/http/handlers"
	"github.com/spec-kit/facility-ticketing/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	TicketTypes    *handlers.TicketTypesHandler
	Tickets        *handlers.TicketsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/auth/login", cfg.Auth.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/ticket-types", cfg.TicketTypes.List)
	protected.Get("/tickets", cfg.Tickets.List)
	protected.Post("/tickets", cfg.Tickets.Create)
	protected.Patch("/tickets/:id", cfg.Tickets.Update)
	protected.Delete("/tickets/:id", cfg.Tickets.Delete)
}
