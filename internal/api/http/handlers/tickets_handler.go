package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/facility-ticketing/internal/api/dto"
	"github.com/spec-kit/facility-ticketing/internal/auth"
	"github.com/spec-kit/facility-ticketing/internal/domain"
	"github.com/spec-kit/facility-ticketing/internal/service"
	apperrors "github.com/spec-kit/facility-ticketing/pkg/util"
)

// TicketsHandler manages the ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewMissingToken()
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	detail, err := h.service.CreateTicket(c.Context(), actor, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		TypeID:      req.TypeID,
		Priority:    req.Priority,
		Floor:       req.Floor,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(ticketResponse(detail))
}

// List GET /api/tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewMissingToken()
	}
	visible, err := h.service.ListTickets(c.Context(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(visible))
	for i := range visible {
		items = append(items, ticketResponse(&visible[i]))
	}
	return c.JSON(items)
}

// Update PATCH /api/tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewMissingToken()
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	detail, err := h.service.UpdateTicket(c.Context(), actor, ticketID, service.TicketUpdateInput{
		Status:      req.Status,
		Description: req.Description,
		Priority:    req.Priority,
		Floor:       req.Floor,
	})
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(detail))
}

// Delete DELETE /api/tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewMissingToken()
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteTicket(c.Context(), actor, ticketID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseTicketID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound("ticket", nil)
	}
	return id, nil
}

func ticketResponse(detail *domain.TicketDetail) dto.TicketResponse {
	return dto.TicketResponse{
		ID:           detail.ID,
		Title:        detail.Title,
		Description:  detail.Description,
		Status:       detail.Status,
		Priority:     detail.Priority,
		Floor:        detail.Floor,
		AssignedRole: detail.AssignedRole,
		CreatedAt:    detail.CreatedAt,
		UpdatedAt:    detail.UpdatedAt,
		TypeName:     detail.TypeName,
		CreatedBy:    detail.CreatedBy,
	}
}
