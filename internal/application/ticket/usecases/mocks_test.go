package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/orris-inc/servicedesk/internal/application/notification"
	"github.com/orris-inc/servicedesk/internal/domain/asset"
	"github.com/orris-inc/servicedesk/internal/domain/customfield"
	"github.com/orris-inc/servicedesk/internal/domain/sla"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	uvo "github.com/orris-inc/servicedesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
)

type mockTicketRepository struct {
	tickets  map[uint]*ticket.Ticket
	deleted  []uint
	lastList ticket.Filter
}

func newMockTicketRepository(tickets ...*ticket.Ticket) *mockTicketRepository {
	m := &mockTicketRepository{tickets: map[uint]*ticket.Ticket{}}
	for _, t := range tickets {
		m.tickets[t.ID()] = t
	}
	return m
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if err := t.SetID(uint(len(m.tickets) + 1)); err != nil {
		return err
	}
	m.tickets[t.ID()] = t
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	m.tickets[t.ID()] = t
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, id uint) error {
	m.deleted = append(m.deleted, id)
	delete(m.tickets, id)
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return m.tickets[id], nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error) {
	m.lastList = filter
	var out []*ticket.Ticket
	for _, t := range m.tickets {
		if filter.RequesterID != nil && t.RequesterID() != *filter.RequesterID {
			continue
		}
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (m *mockTicketRepository) ListForReport(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, error) {
	out, _, err := m.List(ctx, filter)
	return out, err
}

type mockCommentRepository struct {
	comments []*ticket.Comment
}

func (m *mockCommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	c.SetID(uint(len(m.comments) + 1))
	m.comments = append(m.comments, c)
	return nil
}

func (m *mockCommentRepository) ListByTicket(ctx context.Context, ticketID uint, includeInternal bool) ([]*ticket.Comment, error) {
	var out []*ticket.Comment
	for _, c := range m.comments {
		if c.TicketID() == ticketID && (includeInternal || !c.IsInternal()) {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockHistoryRepository struct {
	entries []*ticket.HistoryEntry
}

func (m *mockHistoryRepository) CreateBatch(ctx context.Context, entries []*ticket.HistoryEntry) error {
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *mockHistoryRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.HistoryEntry, error) {
	var out []*ticket.HistoryEntry
	for _, e := range m.entries {
		if e.TicketID == ticketID {
			out = append(out, e)
		}
	}
	return out, nil
}

type mockTrackingRepository struct {
	trackings map[uint]*sla.Tracking
	updates   int
}

func newMockTrackingRepository() *mockTrackingRepository {
	return &mockTrackingRepository{trackings: map[uint]*sla.Tracking{}}
}

func (m *mockTrackingRepository) Create(ctx context.Context, t *sla.Tracking) error {
	m.trackings[t.TicketID()] = t
	return nil
}

func (m *mockTrackingRepository) Update(ctx context.Context, t *sla.Tracking) error {
	m.updates++
	m.trackings[t.TicketID()] = t
	return nil
}

func (m *mockTrackingRepository) GetByTicketID(ctx context.Context, ticketID uint) (*sla.Tracking, error) {
	return m.trackings[ticketID], nil
}

func (m *mockTrackingRepository) ListByTicketIDs(ctx context.Context, ids []uint) (map[uint]*sla.Tracking, error) {
	out := map[uint]*sla.Tracking{}
	for _, id := range ids {
		if t, ok := m.trackings[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

func (m *mockTrackingRepository) ListPendingDue(ctx context.Context, now time.Time, limit int) ([]*sla.Tracking, error) {
	return nil, nil
}

type mockUserRepository struct {
	user.Repository
	users map[uint]*user.User
}

func newMockUserRepository(users ...*user.User) *mockUserRepository {
	m := &mockUserRepository{users: map[uint]*user.User{}}
	for _, u := range users {
		m.users[u.ID()] = u
	}
	return m
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*user.User, error) {
	out := map[uint]*user.User{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (m *mockUserRepository) ListByRoles(ctx context.Context, tenantID *uint, roles []authorization.Role) ([]*user.User, error) {
	var out []*user.User
	for _, u := range m.users {
		if u.Roles().HasAny(roles...) && u.IsActive() {
			out = append(out, u)
		}
	}
	return out, nil
}

type mockTypeRepository struct {
	customfield.TicketTypeRepository
	types map[uint]*customfield.TicketType
}

func (m *mockTypeRepository) GetByID(ctx context.Context, id uint) (*customfield.TicketType, error) {
	return m.types[id], nil
}

type mockFieldRepository struct {
	customfield.FieldRepository
	fields []*customfield.CustomField
}

func (m *mockFieldRepository) ListForType(ctx context.Context, ticketTypeID *uint, activeOnly bool) ([]*customfield.CustomField, error) {
	return m.fields, nil
}

type mockAssetRepository struct {
	asset.Repository
	assets map[uint]*asset.Asset
}

func (m *mockAssetRepository) GetByID(ctx context.Context, id uint) (*asset.Asset, error) {
	return m.assets[id], nil
}

type sequentialNumbers struct {
	n int
}

func (s *sequentialNumbers) Generate(ctx context.Context) (string, error) {
	s.n++
	return fmt.Sprintf("INC-20260101-%04d", s.n), nil
}

type builtinResolver struct{}

func (builtinResolver) Resolve(ctx context.Context, tenantID *uint, priority vo.Priority) (*uint, vo.SLATargets, error) {
	return nil, priority.DefaultSLATargets(), nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingNotifier struct {
	events []notification.Event
}

func (r *recordingNotifier) Notify(ctx context.Context, evt notification.Event) {
	r.events = append(r.events, evt)
}

type publishedEvent struct {
	topic string
	event string
	data  any
}

type recordingPublisher struct {
	events []publishedEvent
}

func (r *recordingPublisher) PublishEvent(ctx context.Context, topic, event string, data any) error {
	r.events = append(r.events, publishedEvent{topic: topic, event: event, data: data})
	return nil
}

func testUser(id uint, tenantID *uint, active bool, roles ...authorization.Role) *user.User {
	e, _ := uvo.NewEmail(fmt.Sprintf("user%d@example.com", id))
	now := time.Now()
	return user.ReconstructUser(id, tenantID, e, fmt.Sprintf("User %d", id), "hash", active, authorization.Roles(roles), nil, now, now)
}

func testTicket(id uint, tenantID *uint, requesterID uint, status vo.TicketStatus) *ticket.Ticket {
	now := time.Now().UTC().Add(-time.Hour)
	t, err := ticket.ReconstructTicket(ticket.State{
		ID:          id,
		Number:      fmt.Sprintf("INC-20260101-%04d", id),
		TenantID:    tenantID,
		Subject:     "Printer jammed",
		Description: "The third floor printer is jammed",
		Category:    "GENERAL",
		Priority:    vo.PriorityMedium,
		Status:      status,
		RequesterID: requesterID,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		panic(err)
	}
	return t
}

func uintPtr(v uint) *uint { return &v }

var (
	tenantA   = uintPtr(1)
	endUser   = authorization.Actor{UserID: 10, TenantID: tenantA, Roles: authorization.Roles{authorization.RoleEndUser}}
	agent     = authorization.Actor{UserID: 20, TenantID: tenantA, Roles: authorization.Roles{authorization.RoleAgent}}
	tenantAdm = authorization.Actor{UserID: 30, TenantID: tenantA, Roles: authorization.Roles{authorization.RoleAdmin}}
)
