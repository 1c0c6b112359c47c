package domain

// UrgencyBreakdown zero-fills the three known urgency tiers for dashboard use.
type UrgencyBreakdown struct {
	Low    int64
	Medium int64
	High   int64
}

// TypeCount is the per-type ticket tally. Types with zero tickets are present
// with a zero count.
type TypeCount struct {
	Type  string
	Count int64
}

// DailyCount is the ticket-creation tally for one calendar day. Days without
// tickets do not appear.
type DailyCount struct {
	Date  string
	Count int64
}

// StatsOverview is the full aggregate bundle. Each field comes from an
// independent query against current store state; the bundle is not a
// consistent snapshot.
type StatsOverview struct {
	Pending        int64
	CompletedToday int64
	Total          int64
	Urgency        UrgencyBreakdown
	Status         map[TicketStatus]int64
	ByType         []TypeCount
	DailyLastWeek  []DailyCount
}

// DashboardStats is the reduced bundle backing the main dashboard view.
type DashboardStats struct {
	Pending        int64
	CompletedToday int64
	Urgency        UrgencyBreakdown
}
