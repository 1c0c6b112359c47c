package dto

import (
	"time"

	"github.com/itops/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload. Type is the category name; the server resolves
// it to an id.
type CreateTicketRequest struct {
	Type           string               `json:"type"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Requester      string               `json:"requester"`
	RequesterEmail string               `json:"requester_email"`
	Urgency        domain.TicketUrgency `json:"urgency"`
}

// UpdateTicketRequest is the sparse update payload; absent fields stay
// untouched.
type UpdateTicketRequest struct {
	Urgency     *domain.TicketUrgency `json:"urgency"`
	Status      *domain.TicketStatus  `json:"status"`
	Description *string               `json:"description"`
}

// ToUpdate converts the request into the domain update set.
func (r UpdateTicketRequest) ToUpdate() domain.TicketUpdate {
	return domain.TicketUpdate{
		Urgency:     r.Urgency,
		Status:      r.Status,
		Description: r.Description,
	}
}

// TicketResponse mirrors the stored ticket row.
type TicketResponse struct {
	ID             int64                `json:"id"`
	TicketNumber   int64                `json:"ticket_number"`
	TypeID         int64                `json:"type_id"`
	TypeName       string               `json:"type_name,omitempty"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Requester      string               `json:"requester"`
	RequesterEmail string               `json:"requester_email"`
	Urgency        domain.TicketUrgency `json:"urgency"`
	Status         domain.TicketStatus  `json:"status"`
	CreatedBy      string               `json:"created_by"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedBy      *string              `json:"updated_by"`
	UpdatedAt      *time.Time           `json:"updated_at"`
	CompletedAt    *time.Time           `json:"completed_at"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:             ticket.ID,
		TicketNumber:   ticket.TicketNumber,
		TypeID:         ticket.TypeID,
		TypeName:       ticket.TypeName,
		Title:          ticket.Title,
		Description:    ticket.Description,
		Requester:      ticket.Requester,
		RequesterEmail: ticket.RequesterEmail,
		Urgency:        ticket.Urgency,
		Status:         ticket.Status,
		CreatedBy:      ticket.CreatedBy,
		CreatedAt:      ticket.CreatedAt,
		UpdatedBy:      ticket.UpdatedBy,
		UpdatedAt:      ticket.UpdatedAt,
		CompletedAt:    ticket.CompletedAt,
	}
}

// TicketTypeResponse mirrors a catalog entry.
type TicketTypeResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

// NewTicketTypeResponse maps a domain ticket type.
func NewTicketTypeResponse(t domain.TicketType) TicketTypeResponse {
	return TicketTypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		IsActive:    t.IsActive,
	}
}
