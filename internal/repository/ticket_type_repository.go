package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/itops/helpdesk-service/internal/domain"
)

// TicketTypeRepository manages the ticket category catalog.
type TicketTypeRepository interface {
	List(ctx context.Context, activeOnly bool) ([]domain.TicketType, error)
	// ResolveID maps a type name to its id. Exact, case-sensitive match on
	// active types only; returns pgx.ErrNoRows on a miss.
	ResolveID(ctx context.Context, name string) (int64, error)
}

type ticketTypeRepository struct {
	pool *pgxpool.Pool
}

// NewTicketTypeRepository builds the repository.
func NewTicketTypeRepository(pool *pgxpool.Pool) TicketTypeRepository {
	return &ticketTypeRepository{pool: pool}
}

func (r *ticketTypeRepository) List(ctx context.Context, activeOnly bool) ([]domain.TicketType, error) {
	query := `SELECT id, name, description, is_active FROM ticket_types ORDER BY name`
	if activeOnly {
		query = `SELECT id, name, description, is_active FROM ticket_types WHERE is_active ORDER BY name`
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.TicketType{}
	for rows.Next() {
		var t domain.TicketType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.IsActive); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (r *ticketTypeRepository) ResolveID(ctx context.Context, name string) (int64, error) {
	const query = `SELECT id FROM ticket_types WHERE name=$1 AND is_active`
	var id int64
	if err := r.pool.QueryRow(ctx, query, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
