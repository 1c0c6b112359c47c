package service

import (
	"context"

	"github.com/itops/helpdesk-service/internal/domain"
	"github.com/itops/helpdesk-service/internal/repository"
	"github.com/itops/helpdesk-service/pkg/util"
)

// dailyWindowDays is the trailing window for the per-day creation series.
const dailyWindowDays = 7

// StatsService derives dashboard views from the ticket store. Everything is
// computed live on demand; each aggregate runs as an independent query, so
// the bundle is not a consistent snapshot under concurrent writes.
type StatsService struct {
	stats repository.StatsRepository
}

// NewStatsService constructs the service.
func NewStatsService(stats repository.StatsRepository) *StatsService {
	return &StatsService{stats: stats}
}

// Overview assembles the full aggregate bundle.
func (s *StatsService) Overview(ctx context.Context) (*domain.StatsOverview, error) {
	pending, err := s.stats.PendingCount(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	completedToday, err := s.stats.CompletedTodayCount(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	urgency, err := s.urgencyBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.stats.TotalCount(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	byStatus, err := s.stats.CountByStatus(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	byType, err := s.stats.CountByType(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	daily, err := s.stats.DailyCounts(ctx, dailyWindowDays)
	if err != nil {
		return nil, util.MapError(err)
	}

	return &domain.StatsOverview{
		Pending:        pending,
		CompletedToday: completedToday,
		Total:          total,
		Urgency:        urgency,
		Status:         byStatus,
		ByType:         byType,
		DailyLastWeek:  daily,
	}, nil
}

// Dashboard assembles the reduced bundle for the main dashboard view.
func (s *StatsService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	pending, err := s.stats.PendingCount(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	completedToday, err := s.stats.CompletedTodayCount(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	urgency, err := s.urgencyBreakdown(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		Pending:        pending,
		CompletedToday: completedToday,
		Urgency:        urgency,
	}, nil
}

// urgencyBreakdown zero-fills the three known tiers; urgencies outside the
// set do not appear in dashboard breakdowns.
func (s *StatsService) urgencyBreakdown(ctx context.Context) (domain.UrgencyBreakdown, error) {
	counts, err := s.stats.PendingByUrgency(ctx)
	if err != nil {
		return domain.UrgencyBreakdown{}, util.MapError(err)
	}
	return domain.UrgencyBreakdown{
		Low:    counts[domain.TicketUrgencyLow],
		Medium: counts[domain.TicketUrgencyMedium],
		High:   counts[domain.TicketUrgencyHigh],
	}, nil
}
