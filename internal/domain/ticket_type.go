package domain

// TicketType is a named category constraining what a ticket may reference.
// Types are seeded at setup time and soft-disabled via IsActive rather than
// deleted while referenced.
type TicketType struct {
	ID          int64
	Name        string
	Description string
	IsActive    bool
}
