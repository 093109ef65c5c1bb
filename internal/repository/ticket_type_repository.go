package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/facility-ticketing/internal/domain"
)

// TicketTypeRepository reads the seeded ticket type reference data.
type TicketTypeRepository interface {
	ListAll(ctx context.Context) ([]domain.TicketType, error)
}

type ticketTypeRepository struct {
	pool *pgxpool.Pool
}

// NewTicketTypeRepository instantiates repository.
func NewTicketTypeRepository(pool *pgxpool.Pool) TicketTypeRepository {
	return &ticketTypeRepository{pool: pool}
}

func (r *ticketTypeRepository) ListAll(ctx context.Context) ([]domain.TicketType, error) {
	const query = `
        SELECT id, name, default_assignee_role
        FROM ticket_types ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketType
	for rows.Next() {
		var tt domain.TicketType
		if err := rows.Scan(&tt.ID, &tt.Name, &tt.DefaultAssigneeRole); err != nil {
			return nil, err
		}
		result = append(result, tt)
	}
	return result, rows.Err()
}
