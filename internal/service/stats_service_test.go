package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itops/helpdesk-service/internal/domain"
)

// fakeStatsRepo serves canned aggregate values.
type fakeStatsRepo struct {
	pending        int64
	completedToday int64
	total          int64
	byUrgency      map[domain.TicketUrgency]int64
	byStatus       map[domain.TicketStatus]int64
	byType         []domain.TypeCount
	daily          []domain.DailyCount
}

func (f *fakeStatsRepo) PendingCount(context.Context) (int64, error) {
	return f.pending, nil
}

func (f *fakeStatsRepo) CompletedTodayCount(context.Context) (int64, error) {
	return f.completedToday, nil
}

func (f *fakeStatsRepo) TotalCount(context.Context) (int64, error) {
	return f.total, nil
}

func (f *fakeStatsRepo) PendingByUrgency(context.Context) (map[domain.TicketUrgency]int64, error) {
	return f.byUrgency, nil
}

func (f *fakeStatsRepo) CountByStatus(context.Context) (map[domain.TicketStatus]int64, error) {
	return f.byStatus, nil
}

func (f *fakeStatsRepo) CountByType(context.Context) ([]domain.TypeCount, error) {
	return f.byType, nil
}

func (f *fakeStatsRepo) DailyCounts(context.Context, int) ([]domain.DailyCount, error) {
	return f.daily, nil
}

func TestOverviewAssemblesBundle(t *testing.T) {
	repo := &fakeStatsRepo{
		pending:        5,
		completedToday: 2,
		total:          12,
		byUrgency: map[domain.TicketUrgency]int64{
			domain.TicketUrgencyHigh:   1,
			domain.TicketUrgencyMedium: 3,
			domain.TicketUrgencyLow:    1,
		},
		byStatus: map[domain.TicketStatus]int64{
			domain.TicketStatusPending:   5,
			domain.TicketStatusCompleted: 7,
		},
		byType: []domain.TypeCount{
			{Type: "Hardware", Count: 8},
			{Type: "Software", Count: 4},
			{Type: "Network", Count: 0},
		},
		daily: []domain.DailyCount{
			{Date: "2026-08-27", Count: 3},
			{Date: "2026-08-28", Count: 2},
		},
	}

	overview, err := NewStatsService(repo).Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(5), overview.Pending)
	assert.Equal(t, int64(2), overview.CompletedToday)
	assert.Equal(t, int64(12), overview.Total)
	assert.Equal(t, domain.UrgencyBreakdown{Low: 1, Medium: 3, High: 1}, overview.Urgency)
	assert.Equal(t, repo.byStatus, overview.Status)
	assert.Equal(t, repo.byType, overview.ByType)
	assert.Equal(t, repo.daily, overview.DailyLastWeek)

	// Per-status counts partition the total.
	var statusSum int64
	for _, count := range overview.Status {
		statusSum += count
	}
	assert.Equal(t, overview.Total, statusSum)
}

func TestOverviewZeroFillsUrgencyTiers(t *testing.T) {
	repo := &fakeStatsRepo{
		byUrgency: map[domain.TicketUrgency]int64{domain.TicketUrgencyHigh: 4},
		byStatus:  map[domain.TicketStatus]int64{},
	}

	overview, err := NewStatsService(repo).Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.UrgencyBreakdown{Low: 0, Medium: 0, High: 4}, overview.Urgency)
}

func TestOverviewIgnoresUnknownUrgencies(t *testing.T) {
	repo := &fakeStatsRepo{
		byUrgency: map[domain.TicketUrgency]int64{
			domain.TicketUrgencyLow:          2,
			domain.TicketUrgency("critical"): 9,
			domain.TicketUrgency("whenever"): 1,
		},
		byStatus: map[domain.TicketStatus]int64{},
	}

	overview, err := NewStatsService(repo).Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.UrgencyBreakdown{Low: 2, Medium: 0, High: 0}, overview.Urgency)
}

func TestDashboardIsReducedBundle(t *testing.T) {
	repo := &fakeStatsRepo{
		pending:        3,
		completedToday: 1,
		byUrgency: map[domain.TicketUrgency]int64{
			domain.TicketUrgencyMedium: 2,
			domain.TicketUrgencyHigh:   1,
		},
	}

	dashboard, err := NewStatsService(repo).Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), dashboard.Pending)
	assert.Equal(t, int64(1), dashboard.CompletedToday)
	assert.Equal(t, domain.UrgencyBreakdown{Low: 0, Medium: 2, High: 1}, dashboard.Urgency)
}
