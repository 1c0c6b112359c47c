package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/itops/helpdesk-service/internal/domain"
)

// TicketRepository encapsulates ticket persistence. The store is the single
// source of truth: id, ticket_number, created_at and the initial status are
// assigned server-side on insert.
type TicketRepository interface {
	Insert(ctx context.Context, ticket *domain.Ticket) error
	UpdatePartial(ctx context.Context, id int64, update domain.TicketUpdate, updatedBy string) (*domain.Ticket, error)
	Delete(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the Postgres-backed repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Insert(ctx context.Context, ticket *domain.Ticket) error {
	// ticket_number is filled in by the store's BEFORE INSERT trigger.
	const query = `
        INSERT INTO tickets (type_id, title, description, requester, requester_email, urgency, status, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,'pending',$7)
        RETURNING id, ticket_number, status, created_at`
	return r.pool.QueryRow(ctx, query,
		ticket.TypeID,
		ticket.Title,
		ticket.Description,
		ticket.Requester,
		ticket.RequesterEmail,
		ticket.Urgency,
		ticket.CreatedBy,
	).Scan(&ticket.ID, &ticket.TicketNumber, &ticket.Status, &ticket.CreatedAt)
}

// UpdatePartial touches only the columns present in update and always stamps
// updated_at/updated_by. Setting status to completed also sets completed_at in
// the same statement; moving off completed retains the last completion time.
func (r *ticketRepository) UpdatePartial(ctx context.Context, id int64, update domain.TicketUpdate, updatedBy string) (*domain.Ticket, error) {
	if update.Empty() {
		return nil, fmt.Errorf("no fields to update")
	}

	sets := []string{}
	args := []any{}

	if update.Urgency != nil {
		args = append(args, *update.Urgency)
		sets = append(sets, fmt.Sprintf("urgency=$%d", len(args)))
	}
	if update.Status != nil {
		args = append(args, *update.Status)
		sets = append(sets, fmt.Sprintf("status=$%d", len(args)))
		if *update.Status == domain.TicketStatusCompleted {
			sets = append(sets, "completed_at=NOW()")
		}
	}
	if update.Description != nil {
		args = append(args, *update.Description)
		sets = append(sets, fmt.Sprintf("description=$%d", len(args)))
	}

	sets = append(sets, "updated_at=NOW()")
	args = append(args, updatedBy)
	sets = append(sets, fmt.Sprintf("updated_by=$%d", len(args)))

	args = append(args, id)
	query := fmt.Sprintf(`
        UPDATE tickets SET %s WHERE id=$%d
        RETURNING id, ticket_number, type_id, title, description, requester, requester_email,
                  urgency, status, created_by, created_at, updated_by, updated_at, completed_at`,
		strings.Join(sets, ", "), len(args))

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&ticket.ID,
		&ticket.TicketNumber,
		&ticket.TypeID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Requester,
		&ticket.RequesterEmail,
		&ticket.Urgency,
		&ticket.Status,
		&ticket.CreatedBy,
		&ticket.CreatedAt,
		&ticket.UpdatedBy,
		&ticket.UpdatedAt,
		&ticket.CompletedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	const query = `
        SELECT t.id, t.ticket_number, t.type_id, tt.name, t.title, t.description, t.requester,
               t.requester_email, t.urgency, t.status, t.created_by, t.created_at,
               t.updated_by, t.updated_at, t.completed_at
        FROM tickets t
        LEFT JOIN ticket_types tt ON t.type_id = tt.id
        WHERE t.id=$1`

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.TicketNumber,
		&ticket.TypeID,
		&ticket.TypeName,
		&ticket.Title,
		&ticket.Description,
		&ticket.Requester,
		&ticket.RequesterEmail,
		&ticket.Urgency,
		&ticket.Status,
		&ticket.CreatedBy,
		&ticket.CreatedAt,
		&ticket.UpdatedBy,
		&ticket.UpdatedAt,
		&ticket.CompletedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// List returns the canonical ticket inbox: high urgency first, then medium,
// then low, newest first within the same urgency.
func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	const query = `
        SELECT t.id, t.ticket_number, t.type_id, tt.name, t.title, t.description, t.requester,
               t.requester_email, t.urgency, t.status, t.created_by, t.created_at,
               t.updated_by, t.updated_at, t.completed_at
        FROM tickets t
        LEFT JOIN ticket_types tt ON t.type_id = tt.id
        ORDER BY
            CASE t.urgency
                WHEN 'high' THEN 1
                WHEN 'medium' THEN 2
                WHEN 'low' THEN 3
            END,
            t.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	result := []domain.Ticket{}
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.TicketNumber,
			&ticket.TypeID,
			&ticket.TypeName,
			&ticket.Title,
			&ticket.Description,
			&ticket.Requester,
			&ticket.RequesterEmail,
			&ticket.Urgency,
			&ticket.Status,
			&ticket.CreatedBy,
			&ticket.CreatedAt,
			&ticket.UpdatedBy,
			&ticket.UpdatedAt,
			&ticket.CompletedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
