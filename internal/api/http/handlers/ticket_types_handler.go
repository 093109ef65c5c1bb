package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/facility-ticketing/internal/api/dto"
	"github.com/spec-kit/facility-ticketing/internal/registry"
)

// TicketTypesHandler serves the seeded ticket type reference data.
type TicketTypesHandler struct {
	types *registry.TicketTypeRegistry
}

// NewTicketTypesHandler constructs handler.
func NewTicketTypesHandler(types *registry.TicketTypeRegistry) *TicketTypesHandler {
	return &TicketTypesHandler{types: types}
}

// List handles GET /api/ticket-types.
func (h *TicketTypesHandler) List(c *fiber.Ctx) error {
	all := h.types.All()
	items := make([]dto.TicketTypeResponse, 0, len(all))
	for _, tt := range all {
		items = append(items, dto.TicketTypeResponse{
			ID:                  tt.ID,
			Name:                tt.Name,
			DefaultAssigneeRole: tt.DefaultAssigneeRole,
		})
	}
	return c.JSON(items)
}
