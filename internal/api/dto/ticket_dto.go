package dto

import (
	"time"

	"github.com/spec-kit/facility-ticketing/internal/domain"
)

// CreateTicketRequest payload. Floor is a pointer so a missing floor is not
// mistaken for the ground floor.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TypeID      int64  `json:"type_id"`
	Priority    string `json:"priority"`
	Floor       *int   `json:"floor"`
}

// UpdateTicketRequest payload. All fields optional; pointers distinguish
// absent from zero.
type UpdateTicketRequest struct {
	Status      *string `json:"status"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Floor       *int    `json:"floor"`
}

// TicketResponse is a ticket decorated with its type name and creator
// username. The creator's raw id is not exposed.
type TicketResponse struct {
	ID           int64                 `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Status       domain.TicketStatus   `json:"status"`
	Priority     domain.TicketPriority `json:"priority"`
	Floor        int                   `json:"floor"`
	AssignedRole domain.Role           `json:"assigned_role"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	TypeName     string                `json:"type_name"`
	CreatedBy    string                `json:"created_by"`
}

// TicketTypeResponse describes a seeded ticket type.
type TicketTypeResponse struct {
	ID                  int64       `json:"id"`
	Name                string      `json:"name"`
	DefaultAssigneeRole domain.Role `json:"default_assignee_role"`
}
