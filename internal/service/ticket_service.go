package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/facility-ticketing/internal/authz"
	"github.com/spec-kit/facility-ticketing/internal/domain"
	"github.com/spec-kit/facility-ticketing/internal/events"
	"github.com/spec-kit/facility-ticketing/internal/registry"
	"github.com/spec-kit/facility-ticketing/internal/repository"
	apperrors "github.com/spec-kit/facility-ticketing/pkg/util"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	types      *registry.TicketTypeRegistry
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	TypeRegistry *registry.TicketTypeRegistry
	Dispatcher   events.Dispatcher
}

// TicketCreateInput describes the ticket creation payload. Floor is a pointer
// so an absent floor is distinguishable from floor zero.
type TicketCreateInput struct {
	Title       string
	Description string
	TypeID      int64
	Priority    string
	Floor       *int
}

// TicketUpdateInput describes the edit payload. Pointers distinguish absent
// fields from zero values; empty-string status and priority count as absent.
type TicketUpdateInput struct {
	Status      *string
	Description *string
	Priority    *string
	Floor       *int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		types:      deps.TypeRegistry,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket validates the payload, routes the ticket to the responsible
// role and persists it. Status is always OPEN on creation regardless of
// input, and the assigned role comes from the ticket type alone.
func (s *TicketService) CreateTicket(ctx context.Context, actor domain.Actor, input TicketCreateInput) (*domain.TicketDetail, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" || input.TypeID == 0 {
		return nil, apperrors.NewMissingRequiredField("title, description, type_id required")
	}
	if input.Floor == nil || !domain.ValidFloor(*input.Floor) {
		return nil, apperrors.NewInvalidFloor()
	}

	priority := domain.TicketPriorityMedium
	if input.Priority != "" {
		parsed, ok := domain.ParseTicketPriority(input.Priority)
		if !ok {
			return nil, apperrors.NewInvalidPriority()
		}
		priority = parsed
	}

	ticketType, ok := s.types.Get(input.TypeID)
	if !ok {
		return nil, apperrors.NewInvalidTicketType()
	}

	ticket := &domain.Ticket{
		Title:           input.Title,
		Description:     input.Description,
		Status:          domain.TicketStatusOpen,
		Priority:        priority,
		Floor:           *input.Floor,
		CreatedByUserID: actor.ID,
		AssignedRole:    authz.AssignRole(&ticketType),
		TypeID:          ticketType.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    actor,
		Payload: events.TicketCreatedPayload{
			Title:        ticket.Title,
			TypeID:       ticket.TypeID,
			AssignedRole: ticket.AssignedRole,
			Priority:     ticket.Priority,
			Floor:        ticket.Floor,
		},
	})
	return s.tickets.GetDetailByID(ctx, ticket.ID)
}

// ListTickets returns every ticket the actor may view, newest first.
// Filtering happens here so no invisible ticket ever leaves the service.
func (s *TicketService) ListTickets(ctx context.Context, actor domain.Actor) ([]domain.TicketDetail, error) {
	all, err := s.tickets.ListAllDetail(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]domain.TicketDetail, 0, len(all))
	for _, detail := range all {
		if authz.CanView(actor, &detail.Ticket) {
			visible = append(visible, detail)
		}
	}
	return visible, nil
}

// UpdateTicket applies an edit restricted to status, description, priority
// and floor. A payload carrying none of those fields is rejected, not
// silently accepted. A successful edit always advances updated_at, even when
// a field is set to its current value.
func (s *TicketService) UpdateTicket(ctx context.Context, actor domain.Actor, ticketID int64, input TicketUpdateInput) (*domain.TicketDetail, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, err
	}
	if !authz.CanEdit(actor, ticket) {
		return nil, apperrors.NewForbidden("Forbidden")
	}

	var fields []string
	payload := events.TicketUpdatedPayload{}

	if input.Status != nil && *input.Status != "" {
		status, ok := domain.ParseTicketStatus(*input.Status)
		if !ok {
			return nil, apperrors.NewInvalidStatus()
		}
		ticket.Status = status
		payload.Status = &status
		fields = append(fields, "status")
	}
	if input.Description != nil {
		ticket.Description = *input.Description
		fields = append(fields, "description")
	}
	if input.Priority != nil && *input.Priority != "" {
		priority, ok := domain.ParseTicketPriority(*input.Priority)
		if !ok {
			return nil, apperrors.NewInvalidPriority()
		}
		ticket.Priority = priority
		payload.Priority = &priority
		fields = append(fields, "priority")
	}
	if input.Floor != nil {
		if !domain.ValidFloor(*input.Floor) {
			return nil, apperrors.NewInvalidFloor()
		}
		ticket.Floor = *input.Floor
		payload.Floor = input.Floor
		fields = append(fields, "floor")
	}

	if len(fields) == 0 {
		return nil, apperrors.NewNoFieldsToUpdate()
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	payload.Fields = fields
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		Actor:    actor,
		Payload:  payload,
	})
	return s.tickets.GetDetailByID(ctx, ticket.ID)
}

// DeleteTicket removes a ticket. Only admins may delete; deleting an id that
// is already gone still succeeds.
func (s *TicketService) DeleteTicket(ctx context.Context, actor domain.Actor, ticketID int64) error {
	if !authz.CanDelete(actor) {
		return apperrors.NewForbidden("Admin only")
	}
	rows, err := s.tickets.Delete(ctx, ticketID)
	if err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticketID,
		Actor:    actor,
		Payload:  events.TicketDeletedPayload{Existed: rows > 0},
	})
	return nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
