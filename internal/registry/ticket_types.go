// Package registry holds the in-process copy of the ticket type reference
// data. Types are seeded once and never change while the process runs, so the
// registry is loaded at startup and immutable afterwards.
package registry

import (
	"context"
	"sort"

	"github.com/spec-kit/facility-ticketing/internal/domain"
	"github.com/spec-kit/facility-ticketing/internal/repository"
)

// TicketTypeRegistry answers ticket type lookups without touching storage.
type TicketTypeRegistry struct {
	byID   map[int64]domain.TicketType
	sorted []domain.TicketType
}

// Load reads all ticket types from the repository and builds the registry.
func Load(ctx context.Context, repo repository.TicketTypeRepository) (*TicketTypeRegistry, error) {
	types, err := repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return NewTicketTypeRegistry(types), nil
}

// NewTicketTypeRegistry builds a registry from the given types.
func NewTicketTypeRegistry(types []domain.TicketType) *TicketTypeRegistry {
	byID := make(map[int64]domain.TicketType, len(types))
	sorted := make([]domain.TicketType, len(types))
	copy(sorted, types)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	for _, tt := range sorted {
		byID[tt.ID] = tt
	}
	return &TicketTypeRegistry{byID: byID, sorted: sorted}
}

// Get returns the ticket type for the id.
func (r *TicketTypeRegistry) Get(id int64) (domain.TicketType, bool) {
	tt, ok := r.byID[id]
	return tt, ok
}

// All returns every ticket type, alphabetical by name.
func (r *TicketTypeRegistry) All() []domain.TicketType {
	out := make([]domain.TicketType, len(r.sorted))
	copy(out, r.sorted)
	return out
}
