package dto

import "github.com/itops/helpdesk-service/internal/domain"

// UrgencyBreakdownResponse always carries the three known tiers, zero-filled.
type UrgencyBreakdownResponse struct {
	Low    int64 `json:"low"`
	Medium int64 `json:"medium"`
	High   int64 `json:"high"`
}

// TypeCountResponse is one entry of the per-type tally.
type TypeCountResponse struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// DailyCountResponse is one entry of the trailing per-day series.
type DailyCountResponse struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// StatsResponse is the full aggregate bundle.
type StatsResponse struct {
	Pending        int64                         `json:"pending"`
	CompletedToday int64                         `json:"completed_today"`
	Total          int64                         `json:"total"`
	Urgency        UrgencyBreakdownResponse      `json:"urgency"`
	Status         map[domain.TicketStatus]int64 `json:"status"`
	ByType         []TypeCountResponse           `json:"by_type"`
	DailyLastWeek  []DailyCountResponse          `json:"daily_last_week"`
}

// NewStatsResponse maps the domain bundle.
func NewStatsResponse(overview *domain.StatsOverview) StatsResponse {
	byType := make([]TypeCountResponse, 0, len(overview.ByType))
	for _, tc := range overview.ByType {
		byType = append(byType, TypeCountResponse{Type: tc.Type, Count: tc.Count})
	}
	daily := make([]DailyCountResponse, 0, len(overview.DailyLastWeek))
	for _, dc := range overview.DailyLastWeek {
		daily = append(daily, DailyCountResponse{Date: dc.Date, Count: dc.Count})
	}
	return StatsResponse{
		Pending:        overview.Pending,
		CompletedToday: overview.CompletedToday,
		Total:          overview.Total,
		Urgency:        urgencyBreakdown(overview.Urgency),
		Status:         overview.Status,
		ByType:         byType,
		DailyLastWeek:  daily,
	}
}

// DashboardResponse is the reduced bundle for the main dashboard view.
type DashboardResponse struct {
	Pending        int64                    `json:"pending"`
	CompletedToday int64                    `json:"completed_today"`
	Urgency        UrgencyBreakdownResponse `json:"urgency"`
}

// NewDashboardResponse maps the domain dashboard stats.
func NewDashboardResponse(stats *domain.DashboardStats) DashboardResponse {
	return DashboardResponse{
		Pending:        stats.Pending,
		CompletedToday: stats.CompletedToday,
		Urgency:        urgencyBreakdown(stats.Urgency),
	}
}

func urgencyBreakdown(u domain.UrgencyBreakdown) UrgencyBreakdownResponse {
	return UrgencyBreakdownResponse{Low: u.Low, Medium: u.Medium, High: u.High}
}
