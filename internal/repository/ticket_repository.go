package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/facility-ticketing/internal/domain"
)

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	GetDetailByID(ctx context.Context, id int64) (*domain.TicketDetail, error)
	ListAllDetail(ctx context.Context) ([]domain.TicketDetail, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, status, priority, floor, created_by_user_id, assigned_role, type_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.Floor,
		ticket.CreatedByUserID,
		ticket.AssignedRole,
		ticket.TypeID,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

// Update persists the editable fields only. Creator, assigned role and type
// are never part of the SET clause. updated_at always advances.
func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET status=$1, description=$2, priority=$3, floor=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	if err := r.pool.QueryRow(ctx, query,
		ticket.Status,
		ticket.Description,
		ticket.Priority,
		ticket.Floor,
		ticket.ID,
	).Scan(&ticket.UpdatedAt); err != nil {
		return err
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	const query = `
        SELECT id, title, description, status, priority, floor,
               created_by_user_id, assigned_role, type_id, created_at, updated_at
        FROM tickets WHERE id=$1`

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.Floor,
		&ticket.CreatedByUserID,
		&ticket.AssignedRole,
		&ticket.TypeID,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

const detailSelect = `
        SELECT t.id, t.title, t.description, t.status, t.priority, t.floor,
               t.created_by_user_id, t.assigned_role, t.type_id, t.created_at, t.updated_at,
               tt.name AS type_name,
               u.username AS created_by
        FROM tickets t
        JOIN ticket_types tt ON tt.id = t.type_id
        JOIN users u ON u.id = t.created_by_user_id`

func (r *ticketRepository) GetDetailByID(ctx context.Context, id int64) (*domain.TicketDetail, error) {
	rows, err := r.pool.Query(ctx, detailSelect+` WHERE t.id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details, err := scanTicketDetails(rows)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &details[0], nil
}

// ListAllDetail returns every ticket, newest first. Ids are monotonically
// increasing, so id order is recency order. Visibility filtering is the
// caller's job.
func (r *ticketRepository) ListAllDetail(ctx context.Context) ([]domain.TicketDetail, error) {
	rows, err := r.pool.Query(ctx, detailSelect+` ORDER BY t.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTicketDetails(rows)
}

// Delete removes the ticket row and reports how many rows went away.
func (r *ticketRepository) Delete(ctx context.Context, id int64) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanTicketDetails(rows pgx.Rows) ([]domain.TicketDetail, error) {
	var result []domain.TicketDetail
	for rows.Next() {
		var detail domain.TicketDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.Title,
			&detail.Description,
			&detail.Status,
			&detail.Priority,
			&detail.Floor,
			&detail.CreatedByUserID,
			&detail.AssignedRole,
			&detail.TypeID,
			&detail.CreatedAt,
			&detail.UpdatedAt,
			&detail.TypeName,
			&detail.CreatedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, detail)
	}
	return result, rows.Err()
}
