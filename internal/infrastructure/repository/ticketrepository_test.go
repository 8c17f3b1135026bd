package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/servicedesk/internal/domain/sla"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
)

func createTicket(t *testing.T, repo *TicketRepository, number, subject string, priority vo.Priority, requesterID uint) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(subject, "Something is broken", "hardware", priority, requesterID, uintPtr(1))
	require.NoError(t, err)
	require.NoError(t, tk.SetNumber(number))
	require.NoError(t, tk.SetTags([]string{"vpn", "laptop"}))
	tk.SetCustomFields(map[string]any{"floor": float64(3)})
	require.NoError(t, repo.Create(context.Background(), tk))
	return tk
}

func TestTicketRepository_CreateAndGet(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()

	tk := createTicket(t, repo, "INC-20260101-0001", "VPN down", vo.PriorityHigh, 10)
	require.NotZero(t, tk.ID())

	got, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "INC-20260101-0001", got.Number())
	assert.Equal(t, vo.StatusNew, got.Status())
	assert.Equal(t, []string{"vpn", "laptop"}, got.Tags())
	assert.Equal(t, float64(3), got.CustomFields()["floor"])

	missing, err := repo.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTicketRepository_UpdatePersistsStatus(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()

	tk := createTicket(t, repo, "INC-20260101-0001", "Printer jam", vo.PriorityLow, 10)
	require.NoError(t, tk.AssignTo(20))
	require.NoError(t, tk.ChangeStatus(vo.StatusResolved))
	require.NoError(t, repo.Update(ctx, tk))

	got, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusResolved, got.Status())
	require.NotNil(t, got.AssigneeID())
	assert.Equal(t, uint(20), *got.AssigneeID())
	assert.NotNil(t, got.ResolvedAt())
}

func TestTicketRepository_ListFilters(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()

	createTicket(t, repo, "INC-20260101-0001", "VPN down", vo.PriorityLow, 10)
	createTicket(t, repo, "INC-20260101-0002", "Email 100% broken", vo.PriorityCritical, 11)
	createTicket(t, repo, "INC-20260101-0003", "New laptop", vo.PriorityMedium, 10)

	tests := []struct {
		name   string
		filter ticket.Filter
		want   []string
	}{
		{
			name:   "by requester",
			filter: ticket.Filter{RequesterID: uintPtr(10), SortBy: "created_at", SortOrder: "asc"},
			want:   []string{"INC-20260101-0001", "INC-20260101-0003"},
		},
		{
			name:   "priority sort ranks critical first",
			filter: ticket.Filter{SortBy: "priority", SortOrder: "desc"},
			want:   []string{"INC-20260101-0002", "INC-20260101-0003", "INC-20260101-0001"},
		},
		{
			name:   "number ascending",
			filter: ticket.Filter{SortBy: "number", SortOrder: "asc"},
			want:   []string{"INC-20260101-0001", "INC-20260101-0002", "INC-20260101-0003"},
		},
		{
			name:   "default is newest first",
			filter: ticket.Filter{},
			want:   []string{"INC-20260101-0003", "INC-20260101-0002", "INC-20260101-0001"},
		},
		{
			name:   "search escapes wildcards",
			filter: ticket.Filter{Search: "100%"},
			want:   []string{"INC-20260101-0002"},
		},
		{
			name:   "other tenant sees nothing",
			filter: ticket.Filter{TenantID: uintPtr(2)},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, total, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)
			numbers := make([]string, 0, len(list))
			for _, tk := range list {
				numbers = append(numbers, tk.Number())
			}
			assert.Equal(t, tt.want, numbers)
		})
	}
}

func TestTicketRepository_DeleteHidesTicket(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()

	tk := createTicket(t, repo, "INC-20260101-0001", "VPN down", vo.PriorityLow, 10)
	require.NoError(t, repo.Delete(ctx, tk.ID()))

	got, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Nil(t, got)

	all, err := repo.ListForReport(ctx, ticket.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCommentAndHistory(t *testing.T) {
	gdb := setupTestDB(t)
	comments := NewCommentRepository(gdb)
	history := NewHistoryRepository(gdb)
	ctx := context.Background()

	public, err := ticket.NewComment(1, 20, "Looking into it", false)
	require.NoError(t, err)
	internal, err := ticket.NewComment(1, 20, "Probably the switch", true)
	require.NoError(t, err)
	require.NoError(t, comments.Create(ctx, public))
	require.NoError(t, comments.Create(ctx, internal))

	visible, err := comments.ListByTicket(ctx, 1, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Looking into it", visible[0].Body())

	all, err := comments.ListByTicket(ctx, 1, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	entries := ticket.HistoryFromChanges(1, 20, []ticket.FieldChange{
		{Field: "status", OldValue: "NEW", NewValue: "OPEN"},
		{Field: "assignee_id", OldValue: "", NewValue: "20"},
	}, time.Now().UTC())
	require.NoError(t, history.CreateBatch(ctx, entries))
	assert.NotZero(t, entries[0].ID)

	rows, err := history.ListByTicket(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "status", rows[0].Field)
}

func TestSLATrackingRepository_ListPendingDue(t *testing.T) {
	gdb := setupTestDB(t)
	tickets := NewTicketRepository(gdb)
	trackings := NewSLATrackingRepository(gdb)
	ctx := context.Background()

	late := createTicket(t, tickets, "INC-20260101-0001", "Late", vo.PriorityCritical, 10)
	onTime := createTicket(t, tickets, "INC-20260101-0002", "Fine", vo.PriorityLow, 10)
	deleted := createTicket(t, tickets, "INC-20260101-0003", "Deleted", vo.PriorityCritical, 10)

	past := time.Now().UTC().Add(-2 * time.Hour)
	targets := vo.SLATargets{FirstResponse: 15 * time.Minute, Resolution: time.Hour}
	require.NoError(t, trackings.Create(ctx, sla.NewTracking(late.ID(), nil, past, targets)))
	require.NoError(t, trackings.Create(ctx, sla.NewTracking(onTime.ID(), nil, time.Now().UTC(), targets)))
	require.NoError(t, trackings.Create(ctx, sla.NewTracking(deleted.ID(), nil, past, targets)))
	require.NoError(t, tickets.Delete(ctx, deleted.ID()))

	due, err := trackings.ListPendingDue(ctx, time.Now().UTC(), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, late.ID(), due[0].TicketID())

	tr := due[0]
	tr.Evaluate(time.Now().UTC())
	require.NoError(t, trackings.Update(ctx, tr))

	due, err = trackings.ListPendingDue(ctx, time.Now().UTC(), 10)
	require.NoError(t, err)
	assert.Empty(t, due)

	byTicket, err := trackings.ListByTicketIDs(ctx, []uint{late.ID(), onTime.ID()})
	require.NoError(t, err)
	assert.True(t, byTicket[late.ID()].ResolutionBreached())
	assert.False(t, byTicket[onTime.ID()].FirstResponseBreached())
}

func TestSLAPolicyRepository_FindActive(t *testing.T) {
	repo := NewSLAPolicyRepository(setupTestDB(t))
	ctx := context.Background()

	def, err := sla.NewPolicy(nil, "Default high", vo.PriorityHigh, 60, 480)
	require.NoError(t, err)
	tenantPolicy, err := sla.NewPolicy(uintPtr(1), "Acme high", vo.PriorityHigh, 30, 240)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, def))
	require.NoError(t, repo.Create(ctx, tenantPolicy))

	got, err := repo.FindActive(ctx, uintPtr(1), vo.PriorityHigh)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, tenantPolicy.ID(), got.ID())

	got, err = repo.FindActive(ctx, nil, vo.PriorityHigh)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, def.ID(), got.ID())

	got, err = repo.FindActive(ctx, uintPtr(2), vo.PriorityLow)
	require.NoError(t, err)
	assert.Nil(t, got)

	list, err := repo.List(ctx, uintPtr(2))
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSLAPolicyRepository_CreateInactive(t *testing.T) {
	repo := NewSLAPolicyRepository(setupTestDB(t))
	ctx := context.Background()

	p, err := sla.NewPolicy(nil, "Retired low", vo.PriorityLow, 480, 4320)
	require.NoError(t, err)
	p.SetActive(false)
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsActive())

	active, err := repo.FindActive(ctx, nil, vo.PriorityLow)
	require.NoError(t, err)
	assert.Nil(t, active)
}
