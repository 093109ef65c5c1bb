package events

import (
	"time"

	"github.com/spec-kit/facility-ticketing/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
	EventTicketUpdated EventType = "ticket_updated"
	EventTicketDeleted EventType = "ticket_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType    `json:"type"`
	TicketID  int64        `json:"ticket_id"`
	Actor     domain.Actor `json:"actor"`
	Timestamp time.Time    `json:"timestamp"`
	Payload   interface{}  `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title        string                `json:"title"`
	TypeID       int64                 `json:"type_id"`
	AssignedRole domain.Role           `json:"assigned_role"`
	Priority     domain.TicketPriority `json:"priority"`
	Floor        int                   `json:"floor"`
}

// TicketUpdatedPayload lists the fields the edit touched.
type TicketUpdatedPayload struct {
	Fields   []string               `json:"fields"`
	Status   *domain.TicketStatus   `json:"status,omitempty"`
	Priority *domain.TicketPriority `json:"priority,omitempty"`
	Floor    *int                   `json:"floor,omitempty"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	Existed bool `json:"existed"`
}
