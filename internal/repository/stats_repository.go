package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/itops/helpdesk-service/internal/domain"
)

// StatsRepository exposes the dashboard aggregates. Every method is a single
// grouped query against current store state; there is no materialized view
// and no cross-method snapshot guarantee.
type StatsRepository interface {
	PendingCount(ctx context.Context) (int64, error)
	CompletedTodayCount(ctx context.Context) (int64, error)
	PendingByUrgency(ctx context.Context) (map[domain.TicketUrgency]int64, error)
	TotalCount(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[domain.TicketStatus]int64, error)
	CountByType(ctx context.Context) ([]domain.TypeCount, error)
	DailyCounts(ctx context.Context, days int) ([]domain.DailyCount, error)
}

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository builds the repository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

func (r *statsRepository) PendingCount(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, `SELECT COUNT(*) FROM tickets WHERE status='pending'`)
}

// CompletedTodayCount counts tickets completed on the server-local calendar
// date.
func (r *statsRepository) CompletedTodayCount(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, `
        SELECT COUNT(*) FROM tickets
        WHERE status='completed' AND completed_at::date = CURRENT_DATE`)
}

func (r *statsRepository) PendingByUrgency(ctx context.Context) (map[domain.TicketUrgency]int64, error) {
	const query = `
        SELECT urgency, COUNT(*) FROM tickets
        WHERE status='pending'
        GROUP BY urgency`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.TicketUrgency]int64)
	for rows.Next() {
		var urgency domain.TicketUrgency
		var count int64
		if err := rows.Scan(&urgency, &count); err != nil {
			return nil, err
		}
		result[urgency] = count
	}
	return result, rows.Err()
}

func (r *statsRepository) TotalCount(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, `SELECT COUNT(*) FROM tickets`)
}

// CountByStatus groups over whatever status values exist; keys are not fixed
// to a known set.
func (r *statsRepository) CountByStatus(ctx context.Context) (map[domain.TicketStatus]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM tickets GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.TicketStatus]int64)
	for rows.Next() {
		var status domain.TicketStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		result[status] = count
	}
	return result, rows.Err()
}

// CountByType includes every ticket type, zero-ticket ones via the outer
// join, ordered by count descending.
func (r *statsRepository) CountByType(ctx context.Context) ([]domain.TypeCount, error) {
	const query = `
        SELECT tt.name, COUNT(t.id)
        FROM ticket_types tt
        LEFT JOIN tickets t ON tt.id = t.type_id
        GROUP BY tt.id, tt.name
        ORDER BY COUNT(t.id) DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.TypeCount{}
	for rows.Next() {
		var tc domain.TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, err
		}
		result = append(result, tc)
	}
	return result, rows.Err()
}

// DailyCounts returns per-day creation tallies for the trailing window, date
// ascending. Days with no tickets are absent from the result.
func (r *statsRepository) DailyCounts(ctx context.Context, days int) ([]domain.DailyCount, error) {
	const query = `
        SELECT created_at::date AS day, COUNT(*)
        FROM tickets
        WHERE created_at >= CURRENT_DATE - make_interval(days => $1)
        GROUP BY day
        ORDER BY day`

	rows, err := r.pool.Query(ctx, query, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.DailyCount{}
	for rows.Next() {
		var day time.Time
		var count int64
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		result = append(result, domain.DailyCount{Date: day.Format("2006-01-02"), Count: count})
	}
	return result, rows.Err()
}

func (r *statsRepository) countWhere(ctx context.Context, query string) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
