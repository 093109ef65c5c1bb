package domain

import (
	"strings"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// Valid reports whether the status is a known lifecycle state.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed:
		return true
	}
	return false
}

// ParseTicketStatus case-normalizes a raw value into a TicketStatus.
func ParseTicketStatus(raw string) (TicketStatus, bool) {
	status := TicketStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", false
	}
	return status, true
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// Valid reports whether the priority is a known level.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// ParseTicketPriority case-normalizes a raw value into a TicketPriority.
func ParseTicketPriority(raw string) (TicketPriority, bool) {
	priority := TicketPriority(strings.ToUpper(strings.TrimSpace(raw)))
	if !priority.Valid() {
		return "", false
	}
	return priority, true
}

// Floor bounds for the building.
const (
	FloorMin = -3
	FloorMax = 6
)

// ValidFloor reports whether the floor is inside the building range.
func ValidFloor(floor int) bool {
	return floor >= FloorMin && floor <= FloorMax
}

// Ticket is the aggregate for facility requests. CreatedByUserID, AssignedRole
// and TypeID are fixed at creation and never mutated afterwards.
type Ticket struct {
	ID              int64
	Title           string
	Description     string
	Status          TicketStatus
	Priority        TicketPriority
	Floor           int
	CreatedByUserID int64
	AssignedRole    Role
	TypeID          int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TicketDetail is a ticket decorated with its type name and creator username,
// as returned by listing and single-ticket reads.
type TicketDetail struct {
	Ticket
	TypeName  string
	CreatedBy string
}
