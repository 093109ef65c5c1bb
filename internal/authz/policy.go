// Package authz holds the permission and assignment rules for tickets.
// Every decision is a pure function of the actor and the ticket; nothing here
// touches storage or the transport.
package authz

import "github.com/spec-kit/facility-ticketing/internal/domain"

// CanView reports whether the actor may see the ticket. Admins see
// everything, end-users see only tickets they created, and responder roles
// (facility, cleaner) see only tickets routed to their role.
func CanView(actor domain.Actor, ticket *domain.Ticket) bool {
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleUser:
		return ticket.CreatedByUserID == actor.ID
	case domain.RoleFacility, domain.RoleCleaner:
		return ticket.AssignedRole == actor.Role
	}
	return false
}

// CanEdit reports whether the actor may submit edits to the ticket. Edit
// visibility is the same predicate as view visibility; keeping one
// implementation prevents the two from drifting apart. Which fields an edit
// may touch is restricted separately by the ticket service.
func CanEdit(actor domain.Actor, ticket *domain.Ticket) bool {
	return CanView(actor, ticket)
}

// CanDelete reports whether the actor may delete tickets. Only admins may,
// and no ticket-level check applies.
func CanDelete(actor domain.Actor) bool {
	return actor.Role == domain.RoleAdmin
}

// AssignRole returns the role a new ticket of the given type is routed to.
// Routing is deterministic: always the type's default assignee role.
func AssignRole(ticketType *domain.TicketType) domain.Role {
	return ticketType.DefaultAssigneeRole
}
