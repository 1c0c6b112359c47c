package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/itops/helpdesk-service/internal/domain"
	"github.com/itops/helpdesk-service/internal/events"
	"github.com/itops/helpdesk-service/internal/repository"
	"github.com/itops/helpdesk-service/pkg/util"
)

// TicketService enforces business rules before delegating to the store. It is
// the single authority for what is a legal ticket mutation; it holds no state
// between requests.
type TicketService struct {
	tickets    repository.TicketRepository
	types      repository.TicketTypeRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	TypeRepo   repository.TicketTypeRepository
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes the ticket creation payload. Type is the
// category name, resolved to an id before any write.
type TicketCreateInput struct {
	Type           string
	Title          string
	Description    string
	Requester      string
	RequesterEmail string
	Urgency        domain.TicketUrgency
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		types:      deps.TypeRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create validates the request and inserts a new pending ticket. The store
// assigns id, ticket_number and created_at. Unrecognized urgency values pass
// through untouched; only an absent urgency defaults to medium.
func (s *TicketService) Create(ctx context.Context, createdBy string, input TicketCreateInput) (*domain.Ticket, error) {
	typeName := strings.TrimSpace(input.Type)
	description := strings.TrimSpace(input.Description)
	requester := strings.TrimSpace(input.Requester)
	if typeName == "" || description == "" || requester == "" {
		return nil, util.NewValidationError("type, description and requester are required", nil)
	}

	typeID, err := s.types.ResolveID(ctx, typeName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewInvalidType(typeName)
		}
		return nil, util.MapError(err)
	}

	urgency := input.Urgency
	if urgency == "" {
		urgency = domain.TicketUrgencyMedium
	}
	if createdBy == "" {
		createdBy = domain.CreatedByExternal
	}

	ticket := &domain.Ticket{
		TypeID:         typeID,
		TypeName:       typeName,
		Title:          strings.TrimSpace(input.Title),
		Description:    description,
		Requester:      requester,
		RequesterEmail: strings.TrimSpace(input.RequesterEmail),
		Urgency:        urgency,
		CreatedBy:      createdBy,
	}
	if err := s.tickets.Insert(ctx, ticket); err != nil {
		return nil, util.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketCreated,
		TicketID:     ticket.ID,
		TicketNumber: ticket.TicketNumber,
		Actor:        createdBy,
		Payload: events.TicketCreatedPayload{
			TypeName:  ticket.TypeName,
			Urgency:   ticket.Urgency,
			Requester: ticket.Requester,
		},
	})
	return ticket, nil
}

// Update applies a sparse field set to an existing ticket. An empty update is
// a caller error, not a no-op success. updated_at/updated_by are always
// stamped; a transition to completed also stamps completed_at.
func (s *TicketService) Update(ctx context.Context, updatedBy string, id int64, update domain.TicketUpdate) (*domain.Ticket, error) {
	if update.Empty() {
		return nil, util.NewValidationError("no fields to update", nil)
	}
	if updatedBy == "" {
		updatedBy = domain.CreatedByExternal
	}

	ticket, err := s.tickets.UpdatePartial(ctx, id, update, updatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, util.MapError(err)
	}

	fields := updatedFieldNames(update)
	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketUpdated,
		TicketID:     ticket.ID,
		TicketNumber: ticket.TicketNumber,
		Actor:        updatedBy,
		Payload:      events.TicketUpdatedPayload{Fields: fields, Status: update.Status},
	})
	if update.Status != nil && *update.Status == domain.TicketStatusCompleted {
		s.publishEvent(ctx, events.Event{
			Type:         events.EventTicketCompleted,
			TicketID:     ticket.ID,
			TicketNumber: ticket.TicketNumber,
			Actor:        updatedBy,
			Payload:      events.TicketCompletedPayload{CompletedAt: ticket.CompletedAt},
		})
	}
	return ticket, nil
}

// Delete hard-deletes a ticket. Admin role only.
func (s *TicketService) Delete(ctx context.Context, role domain.UserRole, deletedBy string, id int64) error {
	if role != domain.UserRoleAdmin {
		return util.NewForbidden("admin role required")
	}

	deleted, err := s.tickets.Delete(ctx, id)
	if err != nil {
		return util.MapError(err)
	}
	if !deleted {
		return util.NewNotFound("ticket", map[string]any{"id": id})
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: id,
		Actor:    deletedBy,
	})
	return nil
}

// List returns the full inbox in canonical order; paging, if any, is the
// caller's concern.
func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	return tickets, nil
}

// GetByID fetches a single ticket.
func (s *TicketService) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, util.MapError(err)
	}
	return ticket, nil
}

// ListTypes returns the category catalog for UI population.
func (s *TicketService) ListTypes(ctx context.Context, activeOnly bool) ([]domain.TicketType, error) {
	types, err := s.types.List(ctx, activeOnly)
	if err != nil {
		return nil, util.MapError(err)
	}
	return types, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func updatedFieldNames(update domain.TicketUpdate) []string {
	fields := []string{}
	if update.Urgency != nil {
		fields = append(fields, "urgency")
	}
	if update.Status != nil {
		fields = append(fields, "status")
	}
	if update.Description != nil {
		fields = append(fields, "description")
	}
	return fields
}
