package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itops/helpdesk-service/internal/domain"
	"github.com/itops/helpdesk-service/internal/events"
	"github.com/itops/helpdesk-service/pkg/util"
)

// fakeTicketRepo mimics the store contract: it assigns id, ticket_number,
// created_at and the pending status on insert, and stamps update/completion
// times the way the SQL layer does.
type fakeTicketRepo struct {
	nextID     int64
	nextNumber int64
	tickets    map[int64]*domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{nextNumber: 1000, tickets: map[int64]*domain.Ticket{}}
}

func (f *fakeTicketRepo) Insert(_ context.Context, ticket *domain.Ticket) error {
	f.nextID++
	f.nextNumber++
	ticket.ID = f.nextID
	ticket.TicketNumber = f.nextNumber
	ticket.Status = domain.TicketStatusPending
	ticket.CreatedAt = time.Now()

	stored := *ticket
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) UpdatePartial(_ context.Context, id int64, update domain.TicketUpdate, updatedBy string) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if update.Urgency != nil {
		ticket.Urgency = *update.Urgency
	}
	if update.Status != nil {
		ticket.Status = *update.Status
		if *update.Status == domain.TicketStatusCompleted {
			now := time.Now()
			ticket.CompletedAt = &now
		}
	}
	if update.Description != nil {
		ticket.Description = *update.Description
	}
	now := time.Now()
	ticket.UpdatedAt = &now
	ticket.UpdatedBy = &updatedBy

	result := *ticket
	return &result, nil
}

func (f *fakeTicketRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.tickets[id]; !ok {
		return false, nil
	}
	delete(f.tickets, id)
	return true, nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	result := *ticket
	return &result, nil
}

func (f *fakeTicketRepo) List(_ context.Context) ([]domain.Ticket, error) {
	result := []domain.Ticket{}
	for _, ticket := range f.tickets {
		result = append(result, *ticket)
	}
	sort.SliceStable(result, func(i, j int) bool {
		ri, rj := domain.UrgencyRank(result[i].Urgency), domain.UrgencyRank(result[j].Urgency)
		if ri != rj {
			return ri < rj
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

type fakeTypeRepo struct {
	types map[string]int64
}

func (f *fakeTypeRepo) List(_ context.Context, _ bool) ([]domain.TicketType, error) {
	result := []domain.TicketType{}
	for name, id := range f.types {
		result = append(result, domain.TicketType{ID: id, Name: name, IsActive: true})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *fakeTypeRepo) ResolveID(_ context.Context, name string) (int64, error) {
	id, ok := f.types[name]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	return id, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func newTicketServiceForTest() (*TicketService, *fakeTicketRepo, *recordingDispatcher) {
	tickets := newFakeTicketRepo()
	types := &fakeTypeRepo{types: map[string]int64{"Hardware": 1, "Software": 2}}
	dispatcher := &recordingDispatcher{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo: tickets,
		TypeRepo:   types,
		Dispatcher: dispatcher,
	})
	return svc, tickets, dispatcher
}

func domainCode(t *testing.T, err error) *util.DomainError {
	t.Helper()
	var de *util.DomainError
	require.ErrorAs(t, err, &de)
	return de
}

func TestCreateRejectsMissingFields(t *testing.T) {
	svc, _, _ := newTicketServiceForTest()
	ctx := context.Background()

	cases := []TicketCreateInput{
		{Type: "", Description: "printer on fire", Requester: "kim"},
		{Type: "Hardware", Description: "   ", Requester: "kim"},
		{Type: "Hardware", Description: "printer on fire", Requester: ""},
	}
	for _, input := range cases {
		_, err := svc.Create(ctx, "ops", input)
		de := domainCode(t, err)
		assert.Equal(t, "VALIDATION_FAILED", de.Code)
		assert.Equal(t, 400, de.HTTPStatus)
	}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc, _, _ := newTicketServiceForTest()

	_, err := svc.Create(context.Background(), "ops", TicketCreateInput{
		Type:        "Plumbing",
		Description: "sink leaking",
		Requester:   "kim",
	})
	de := domainCode(t, err)
	assert.Equal(t, "INVALID_TYPE", de.Code)
	assert.Equal(t, 400, de.HTTPStatus)
	assert.Equal(t, "Plumbing", de.Details["type"])
}

func TestCreateDefaults(t *testing.T) {
	svc, _, dispatcher := newTicketServiceForTest()

	ticket, err := svc.Create(context.Background(), "", TicketCreateInput{
		Type:        "Hardware",
		Description: "laptop will not boot",
		Requester:   "kim",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketUrgencyMedium, ticket.Urgency)
	assert.Equal(t, domain.TicketStatusPending, ticket.Status)
	assert.Equal(t, domain.CreatedByExternal, ticket.CreatedBy)
	assert.NotZero(t, ticket.ID)
	assert.NotZero(t, ticket.TicketNumber)
	assert.Nil(t, ticket.CompletedAt)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventTicketCreated, dispatcher.published[0].Type)
}

func TestCreatePreservesUnknownUrgency(t *testing.T) {
	svc, _, _ := newTicketServiceForTest()

	ticket, err := svc.Create(context.Background(), "ops", TicketCreateInput{
		Type:        "Hardware",
		Description: "monitor flicker",
		Requester:   "kim",
		Urgency:     domain.TicketUrgency("critical"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketUrgency("critical"), ticket.Urgency)
}

func TestCreateAssignsMonotonicTicketNumbers(t *testing.T) {
	svc, _, _ := newTicketServiceForTest()
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		ticket, err := svc.Create(ctx, "ops", TicketCreateInput{
			Type:        "Software",
			Description: "vpn client crash",
			Requester:   "kim",
		})
		require.NoError(t, err)
		assert.Greater(t, ticket.TicketNumber, last)
		last = ticket.TicketNumber
	}
}

func TestUpdateRejectsEmptyUpdate(t *testing.T) {
	svc, _, _ := newTicketServiceForTest()

	_, err := svc.Update(context.Background(), "ops", 1, domain.TicketUpdate{})
	de := domainCode(t, err)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
}

func TestUpdateUnknownTicket(t *testing.T) {
	svc, _, _ := newTicketServiceForTest()

	urgency := domain.TicketUrgencyHigh
	_, err := svc.Update(context.Background(), "ops", 999, domain.TicketUpdate{Urgency: &urgency})
	de := domainCode(t, err)
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, 404, de.HTTPStatus)
}

func TestUpdateCompletionStampsCompletedAt(t *testing.T) {
	svc, _, dispatcher := newTicketServiceForTest()
	ctx := context.Background()

	ticket, err := svc.Create(ctx, "ops", TicketCreateInput{
		Type:        "Hardware",
		Description: "keyboard missing keys",
		Requester:   "kim",
	})
	require.NoError(t, err)

	completed := domain.TicketStatusCompleted
	updated, err := svc.Update(ctx, "agent-1", ticket.ID, domain.TicketUpdate{Status: &completed})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, "agent-1", *updated.UpdatedBy)
	assert.NotNil(t, updated.UpdatedAt)

	// created + updated + completed
	require.Len(t, dispatcher.published, 3)
	assert.Equal(t, events.EventTicketCompleted, dispatcher.published[2].Type)
}

func TestReopenRetainsCompletedAt(t *testing.T) {
	svc, _, _ := newTicketServiceForTest()
	ctx := context.Background()

	ticket, err := svc.Create(ctx, "ops", TicketCreateInput{
		Type:        "Hardware",
		Description: "dock not charging",
		Requester:   "kim",
	})
	require.NoError(t, err)

	completed := domain.TicketStatusCompleted
	updated, err := svc.Update(ctx, "ops", ticket.ID, domain.TicketUpdate{Status: &completed})
	require.NoError(t, err)
	firstCompletion := updated.CompletedAt
	require.NotNil(t, firstCompletion)

	pending := domain.TicketStatusPending
	reopened, err := svc.Update(ctx, "ops", ticket.ID, domain.TicketUpdate{Status: &pending})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusPending, reopened.Status)
	require.NotNil(t, reopened.CompletedAt)
	assert.Equal(t, *firstCompletion, *reopened.CompletedAt)
}

func TestDeleteRequiresAdmin(t *testing.T) {
	svc, _, _ := newTicketServiceForTest()
	ctx := context.Background()

	ticket, err := svc.Create(ctx, "ops", TicketCreateInput{
		Type:        "Hardware",
		Description: "mouse double-clicking",
		Requester:   "kim",
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, domain.UserRoleAgent, "ops", ticket.ID)
	de := domainCode(t, err)
	assert.Equal(t, "FORBIDDEN", de.Code)
	assert.Equal(t, 403, de.HTTPStatus)

	// The ticket must survive the refused delete.
	_, err = svc.GetByID(ctx, ticket.ID)
	assert.NoError(t, err)
}

func TestDeleteAsAdmin(t *testing.T) {
	svc, _, dispatcher := newTicketServiceForTest()
	ctx := context.Background()

	ticket, err := svc.Create(ctx, "ops", TicketCreateInput{
		Type:        "Hardware",
		Description: "screen cracked",
		Requester:   "kim",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, domain.UserRoleAdmin, "admin", ticket.ID))

	_, err = svc.GetByID(ctx, ticket.ID)
	de := domainCode(t, err)
	assert.Equal(t, "NOT_FOUND", de.Code)

	// Deleting again reports not found, not success.
	err = svc.Delete(ctx, domain.UserRoleAdmin, "admin", ticket.ID)
	de = domainCode(t, err)
	assert.Equal(t, "NOT_FOUND", de.Code)

	last := dispatcher.published[len(dispatcher.published)-1]
	assert.Equal(t, events.EventTicketDeleted, last.Type)
}

func TestListOrdersByUrgencyThenRecency(t *testing.T) {
	svc, repo, _ := newTicketServiceForTest()
	ctx := context.Background()

	mk := func(urgency domain.TicketUrgency) *domain.Ticket {
		ticket, err := svc.Create(ctx, "ops", TicketCreateInput{
			Type:        "Hardware",
			Description: "desc",
			Requester:   "kim",
			Urgency:     urgency,
		})
		require.NoError(t, err)
		return ticket
	}

	low := mk(domain.TicketUrgencyLow)
	highOld := mk(domain.TicketUrgencyHigh)
	medium := mk(domain.TicketUrgencyMedium)
	highNew := mk(domain.TicketUrgencyHigh)

	// Force a deterministic recency gap between the two high tickets.
	repo.tickets[highOld.ID].CreatedAt = time.Now().Add(-time.Hour)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 4)

	assert.Equal(t, highNew.ID, listed[0].ID)
	assert.Equal(t, highOld.ID, listed[1].ID)
	assert.Equal(t, medium.ID, listed[2].ID)
	assert.Equal(t, low.ID, listed[3].ID)
}

func TestListTypes(t *testing.T) {
	svc, _, _ := newTicketServiceForTest()

	types, err := svc.ListTypes(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Hardware", types[0].Name)
	assert.Equal(t, "Software", types[1].Name)
}
