package domain

// TicketType is a category of request with a fixed default responsible role.
// Types are seeded reference data and read-only at runtime.
type TicketType struct {
	ID                  int64
	Name                string
	DefaultAssigneeRole Role
}
