package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/servicedesk/internal/application/notification"
	"github.com/orris-inc/servicedesk/internal/domain/sla"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
)

type mockPolicyRepository struct {
	policies map[uint]*sla.Policy
	deleted  []uint
}

func newMockPolicyRepository(policies ...*sla.Policy) *mockPolicyRepository {
	m := &mockPolicyRepository{policies: map[uint]*sla.Policy{}}
	for _, p := range policies {
		m.policies[p.ID()] = p
	}
	return m
}

func (m *mockPolicyRepository) Create(ctx context.Context, p *sla.Policy) error {
	p.SetID(uint(len(m.policies) + 1))
	m.policies[p.ID()] = p
	return nil
}

func (m *mockPolicyRepository) Update(ctx context.Context, p *sla.Policy) error { return nil }

func (m *mockPolicyRepository) Delete(ctx context.Context, id uint) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockPolicyRepository) GetByID(ctx context.Context, id uint) (*sla.Policy, error) {
	return m.policies[id], nil
}

func (m *mockPolicyRepository) List(ctx context.Context, tenantID *uint) ([]*sla.Policy, error) {
	return nil, nil
}

func (m *mockPolicyRepository) FindActive(ctx context.Context, tenantID *uint, priority vo.Priority) (*sla.Policy, error) {
	for _, p := range m.policies {
		if !p.IsActive() || p.Priority() != priority {
			continue
		}
		if (tenantID == nil && p.TenantID() == nil) || (tenantID != nil && p.TenantID() != nil && *tenantID == *p.TenantID()) {
			return p, nil
		}
	}
	return nil, nil
}

type mockTrackingRepository struct {
	pending []*sla.Tracking
	updated []uint
}

func (m *mockTrackingRepository) Create(ctx context.Context, t *sla.Tracking) error { return nil }

func (m *mockTrackingRepository) Update(ctx context.Context, t *sla.Tracking) error {
	m.updated = append(m.updated, t.TicketID())
	return nil
}

func (m *mockTrackingRepository) GetByTicketID(ctx context.Context, ticketID uint) (*sla.Tracking, error) {
	return nil, nil
}

func (m *mockTrackingRepository) ListByTicketIDs(ctx context.Context, ids []uint) (map[uint]*sla.Tracking, error) {
	return nil, nil
}

// ListPendingDue hands out the pending set once, as a real query would after
// the flags are persisted.
func (m *mockTrackingRepository) ListPendingDue(ctx context.Context, now time.Time, limit int) ([]*sla.Tracking, error) {
	out := m.pending
	m.pending = nil
	return out, nil
}

type mockTicketRepository struct {
	ticket.Repository
	tickets map[uint]*ticket.Ticket
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return m.tickets[id], nil
}

type mockUserRepository struct {
	user.Repository
	managers []*user.User
}

func (m *mockUserRepository) ListByRoles(ctx context.Context, tenantID *uint, roles []authorization.Role) ([]*user.User, error) {
	return m.managers, nil
}

type recordingNotifier struct {
	events []notification.Event
}

func (r *recordingNotifier) Notify(ctx context.Context, evt notification.Event) {
	r.events = append(r.events, evt)
}

func uintPtr(v uint) *uint { return &v }
