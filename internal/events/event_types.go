package events

import (
	"time"

	"github.com/itops/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated   EventType = "ticket_created"
	EventTicketUpdated   EventType = "ticket_updated"
	EventTicketCompleted EventType = "ticket_completed"
	EventTicketDeleted   EventType = "ticket_deleted"
)

// Event represents a domain event emitted by the ticket service. Actor is the
// username of the authenticated caller, or the external marker.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	TicketID     int64       `json:"ticket_id"`
	TicketNumber int64       `json:"ticket_number,omitempty"`
	Actor        string      `json:"actor"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload,omitempty"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TypeName  string               `json:"type_name"`
	Urgency   domain.TicketUrgency `json:"urgency"`
	Requester string               `json:"requester"`
}

// TicketUpdatedPayload lists the fields touched by a partial update.
type TicketUpdatedPayload struct {
	Fields []string             `json:"fields"`
	Status *domain.TicketStatus `json:"status,omitempty"`
}

// TicketCompletedPayload payload.
type TicketCompletedPayload struct {
	CompletedAt *time.Time `json:"completed_at"`
}
