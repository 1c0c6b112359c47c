package domain

import "time"

// TicketUrgency is the caller-declared priority tier. The store keeps it as an
// open string set; only these three values participate in inbox ordering and
// dashboard breakdowns.
type TicketUrgency string

const (
	TicketUrgencyLow    TicketUrgency = "low"
	TicketUrgencyMedium TicketUrgency = "medium"
	TicketUrgencyHigh   TicketUrgency = "high"
)

// UrgencyRank maps urgencies to the canonical inbox sort rank (high first).
// Unknown values sort after the known tiers.
func UrgencyRank(u TicketUrgency) int {
	switch u {
	case TicketUrgencyHigh:
		return 1
	case TicketUrgencyMedium:
		return 2
	case TicketUrgencyLow:
		return 3
	default:
		return 4
	}
}

// TicketStatus is an open string set; only pending and completed carry
// semantics (creation default and the completed_at stamp).
type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "pending"
	TicketStatusCompleted TicketStatus = "completed"
)

// CreatedByExternal marks rows written without an authenticated user, such as
// direct-store integrations.
const CreatedByExternal = "external"

// Ticket is a single support request record. ID, TicketNumber, CreatedAt and
// the initial Status are assigned by the store at insert time.
type Ticket struct {
	ID             int64
	TicketNumber   int64
	TypeID         int64
	TypeName       string
	Title          string
	Description    string
	Requester      string
	RequesterEmail string
	Urgency        TicketUrgency
	Status         TicketStatus
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedBy      *string
	UpdatedAt      *time.Time
	CompletedAt    *time.Time
}

// TicketUpdate carries the sparse field set accepted by partial updates. Nil
// fields are left untouched in the store.
type TicketUpdate struct {
	Urgency     *TicketUrgency
	Status      *TicketStatus
	Description *string
}

// Empty reports whether the update carries no recognized fields.
func (u TicketUpdate) Empty() bool {
	return u.Urgency == nil && u.Status == nil && u.Description == nil
}
