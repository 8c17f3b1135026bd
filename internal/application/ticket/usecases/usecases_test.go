package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/servicedesk/internal/domain/customfield"
	notif "github.com/orris-inc/servicedesk/internal/domain/notification"
	"github.com/orris-inc/servicedesk/internal/domain/sla"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/hubprotocol"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type createFixture struct {
	tickets   *mockTicketRepository
	history   *mockHistoryRepository
	trackings *mockTrackingRepository
	fields    *mockFieldRepository
	types     *mockTypeRepository
	notifier  *recordingNotifier
	uc        *CreateTicketUseCase
}

func newCreateFixture() *createFixture {
	f := &createFixture{
		tickets:   newMockTicketRepository(),
		history:   &mockHistoryRepository{},
		trackings: newMockTrackingRepository(),
		fields:    &mockFieldRepository{},
		types:     &mockTypeRepository{types: map[uint]*customfield.TicketType{}},
		notifier:  &recordingNotifier{},
	}
	users := newMockUserRepository(
		testUser(20, tenantA, true, authorization.RoleAgent),
		testUser(21, tenantA, false, authorization.RoleAgent),
	)
	f.uc = NewCreateTicketUseCase(
		f.tickets, f.history, &sequentialNumbers{}, f.types, f.fields,
		&mockAssetRepository{}, f.trackings, builtinResolver{}, users,
		f.notifier, passthroughTx{}, logger.NewNop(),
	)
	return f
}

func TestCreateTicket_Success(t *testing.T) {
	f := newCreateFixture()

	result, err := f.uc.Execute(context.Background(), CreateTicketCommand{
		Actor:       endUser,
		Subject:     "  VPN down ",
		Description: "Cannot connect since this morning",
		Priority:    "high",
	})
	require.NoError(t, err)

	assert.Equal(t, "VPN down", result.Subject)
	assert.Equal(t, "NEW", result.Status)
	assert.Equal(t, "HIGH", result.Priority)
	assert.Equal(t, "INC-20260101-0001", result.Number)
	require.NotNil(t, result.SLA)
	assert.Len(t, f.tickets.tickets, 1)
	assert.Contains(t, f.trackings.trackings, result.ID)
	require.Len(t, f.history.entries, 1)
	assert.Equal(t, "NEW", f.history.entries[0].NewValue)

	require.Len(t, f.notifier.events, 1)
	evt := f.notifier.events[0]
	assert.Equal(t, notif.EventTicketCreated, evt.Type)
	assert.Equal(t, []uint{20}, evt.Recipients, "inactive agents are skipped")
}

func TestCreateTicket_RejectsBlankFields(t *testing.T) {
	tests := []struct {
		name        string
		subject     string
		description string
	}{
		{"blank subject", "   ", "body"},
		{"blank description", "subject", "\t\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCreateFixture()
			_, err := f.uc.Execute(context.Background(), CreateTicketCommand{Actor: endUser, Subject: tt.subject, Description: tt.description})
			assert.True(t, errors.IsValidationError(err))
			assert.Empty(t, f.tickets.tickets)
		})
	}
}

func TestCreateTicket_TypeDefaultPriorityAndCustomFields(t *testing.T) {
	f := newCreateFixture()
	now := time.Now()
	f.types.types[3] = customfield.ReconstructTicketType(3, tenantA, "Hardware", "", vo.PriorityCritical, true, now, now)
	f.fields.fields = []*customfield.CustomField{
		customfield.ReconstructCustomField(1, uintPtr(3), "serial", "Serial", customfield.FieldText, nil, true, true, 0, now, now),
	}

	_, err := f.uc.Execute(context.Background(), CreateTicketCommand{
		Actor: endUser, Subject: "Laptop broken", Description: "Screen flickers", TicketTypeID: uintPtr(3),
	})
	assert.True(t, errors.IsValidationError(err), "required custom field missing")

	result, err := f.uc.Execute(context.Background(), CreateTicketCommand{
		Actor: endUser, Subject: "Laptop broken", Description: "Screen flickers", TicketTypeID: uintPtr(3),
		CustomFields: map[string]any{"serial": "SN-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "CRITICAL", result.Priority)
	assert.Equal(t, "SN-1", result.CustomFields["serial"])
}

func TestListTickets_EndUserSeesOwnOnly(t *testing.T) {
	repo := newMockTicketRepository(
		testTicket(1, tenantA, endUser.UserID, vo.StatusNew),
		testTicket(2, tenantA, 99, vo.StatusNew),
	)
	uc := NewListTicketsUseCase(repo, newMockTrackingRepository(), newMockUserRepository(), logger.NewNop())

	result, err := uc.Execute(context.Background(), ListTicketsQuery{Actor: endUser})
	require.NoError(t, err)
	require.Len(t, result.Tickets, 1)
	assert.Equal(t, uint(1), result.Tickets[0].ID)
	assert.Equal(t, endUser.UserID, *repo.lastList.RequesterID)
	assert.Equal(t, *tenantA, *repo.lastList.TenantID)
}

func TestListTickets_InvalidFilters(t *testing.T) {
	uc := NewListTicketsUseCase(newMockTicketRepository(), newMockTrackingRepository(), newMockUserRepository(), logger.NewNop())

	_, err := uc.Execute(context.Background(), ListTicketsQuery{Actor: agent, Statuses: []string{"DONE"}})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), ListTicketsQuery{Actor: agent, Priority: "URGENT"})
	assert.True(t, errors.IsValidationError(err))
}

func TestGetTicket_HidesInternalCommentsFromEndUser(t *testing.T) {
	tk := testTicket(1, tenantA, endUser.UserID, vo.StatusOpen)
	comments := &mockCommentRepository{}
	public, _ := ticket.NewComment(1, agent.UserID, "Looking into it", false)
	internal, _ := ticket.NewComment(1, agent.UserID, "User keeps rebooting", true)
	require.NoError(t, comments.Create(context.Background(), public))
	require.NoError(t, comments.Create(context.Background(), internal))

	uc := NewGetTicketUseCase(newMockTicketRepository(tk), comments, newMockTrackingRepository(), newMockUserRepository(), logger.NewNop())

	asUser, err := uc.Execute(context.Background(), endUser, 1)
	require.NoError(t, err)
	assert.Len(t, asUser.Comments, 1)

	asAgent, err := uc.Execute(context.Background(), agent, 1)
	require.NoError(t, err)
	assert.Len(t, asAgent.Comments, 2)
}

func TestGetTicket_OtherTenantIsNotFound(t *testing.T) {
	tk := testTicket(1, uintPtr(2), 77, vo.StatusOpen)
	uc := NewGetTicketUseCase(newMockTicketRepository(tk), &mockCommentRepository{}, newMockTrackingRepository(), newMockUserRepository(), logger.NewNop())

	_, err := uc.Execute(context.Background(), agent, 1)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestUpdateTicket_PriorityChangeRetargets(t *testing.T) {
	tk := testTicket(1, tenantA, endUser.UserID, vo.StatusOpen)
	trackings := newMockTrackingRepository()
	trackings.trackings[1] = sla.NewTracking(1, nil, tk.CreatedAt(), vo.PriorityMedium.DefaultSLATargets())
	history := &mockHistoryRepository{}
	notifier := &recordingNotifier{}
	pub := &recordingPublisher{}

	uc := NewUpdateTicketUseCase(newMockTicketRepository(tk), history, &mockFieldRepository{}, trackings,
		builtinResolver{}, notifier, pub, passthroughTx{}, logger.NewNop())

	critical := "CRITICAL"
	_, err := uc.Execute(context.Background(), UpdateTicketCommand{Actor: endUser, TicketID: 1, Priority: &critical})
	assert.True(t, errors.IsForbiddenError(err))

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{Actor: agent, TicketID: 1, Priority: &critical})
	require.NoError(t, err)
	assert.Equal(t, "CRITICAL", result.Priority)
	assert.Equal(t, tk.CreatedAt().Add(15*time.Minute), trackings.trackings[1].FirstResponseTarget())
	assert.False(t, trackings.trackings[1].FirstResponseBreached(), "the sweep raises the flag and notifies")
	assert.True(t, trackings.trackings[1].Evaluate(time.Now().UTC()).FirstResponse, "the ticket is an hour old")

	require.Len(t, history.entries, 1)
	assert.Equal(t, "priority", history.entries[0].Field)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, notif.EventTicketUpdated, notifier.events[0].Type)
	require.Len(t, pub.events, 1)
	assert.Equal(t, hubprotocol.TicketTopic(1), pub.events[0].topic)
}

func TestAssignTicket(t *testing.T) {
	users := newMockUserRepository(
		testUser(20, tenantA, true, authorization.RoleAgent),
		testUser(21, tenantA, false, authorization.RoleAgent),
		testUser(22, uintPtr(2), true, authorization.RoleAgent),
		testUser(23, tenantA, true, authorization.RoleEndUser),
	)

	tests := []struct {
		name       string
		assigneeID uint
		wantErr    bool
	}{
		{"active agent", 20, false},
		{"inactive agent", 21, true},
		{"other tenant", 22, true},
		{"not an agent", 23, true},
		{"unknown user", 404, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := testTicket(1, tenantA, endUser.UserID, vo.StatusNew)
			notifier := &recordingNotifier{}
			uc := NewAssignTicketUseCase(newMockTicketRepository(tk), &mockHistoryRepository{}, users, notifier, nil, passthroughTx{}, logger.NewNop())

			result, err := uc.Execute(context.Background(), AssignTicketCommand{Actor: tenantAdm, TicketID: 1, AssigneeID: tt.assigneeID})
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "OPEN", result.Status, "assignment opens a new ticket")
			require.Len(t, notifier.events, 1)
			assert.Equal(t, notif.EventTicketAssigned, notifier.events[0].Type)
			assert.Equal(t, []uint{20}, notifier.events[0].Recipients)
		})
	}
}

func TestChangeStatus(t *testing.T) {
	tests := []struct {
		name    string
		actor   authorization.Actor
		from    vo.TicketStatus
		to      string
		wantErr func(error) bool
	}{
		{"agent resolves", agent, vo.StatusInProgress, "RESOLVED", nil},
		{"invalid transition", agent, vo.StatusNew, "RESOLVED", errors.IsValidationError},
		{"unknown status", agent, vo.StatusNew, "DONE", errors.IsValidationError},
		{"requester closes", endUser, vo.StatusResolved, "CLOSED", nil},
		{"requester cannot resolve", endUser, vo.StatusOpen, "RESOLVED", errors.IsForbiddenError},
		{"requester reopens", endUser, vo.StatusClosed, "reopened", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := testTicket(1, tenantA, endUser.UserID, tt.from)
			uc := NewChangeStatusUseCase(newMockTicketRepository(tk), &mockHistoryRepository{}, newMockTrackingRepository(),
				&recordingNotifier{}, nil, passthroughTx{}, logger.NewNop())

			_, err := uc.Execute(context.Background(), ChangeStatusCommand{Actor: tt.actor, TicketID: 1, Status: tt.to})
			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "got %v", err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestChangeStatus_TracksResolution(t *testing.T) {
	tk := testTicket(1, tenantA, endUser.UserID, vo.StatusOpen)
	trackings := newMockTrackingRepository()
	trackings.trackings[1] = sla.NewTracking(1, nil, tk.CreatedAt(), vo.PriorityMedium.DefaultSLATargets())
	notifier := &recordingNotifier{}
	uc := NewChangeStatusUseCase(newMockTicketRepository(tk), &mockHistoryRepository{}, trackings, notifier, nil, passthroughTx{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), ChangeStatusCommand{Actor: agent, TicketID: 1, Status: "RESOLVED"})
	require.NoError(t, err)
	tr := trackings.trackings[1]
	require.NotNil(t, tr.ResolvedAt())
	assert.False(t, tr.ResolutionBreached())
	require.NotNil(t, tr.FirstResponseAt(), "resolution counts as first response")

	_, err = uc.Execute(context.Background(), ChangeStatusCommand{Actor: agent, TicketID: 1, Status: "REOPENED"})
	require.NoError(t, err)
	assert.Nil(t, tr.ResolvedAt())
	assert.Nil(t, tk.ResolvedAt())

	require.Len(t, notifier.events, 2)
	assert.Equal(t, notif.EventTicketStatusChanged, notifier.events[0].Type)
	assert.Equal(t, []uint{endUser.UserID}, notifier.events[0].Recipients)
}

func TestAddComment(t *testing.T) {
	tk := testTicket(1, tenantA, endUser.UserID, vo.StatusOpen)
	trackings := newMockTrackingRepository()
	trackings.trackings[1] = sla.NewTracking(1, nil, tk.CreatedAt(), vo.PriorityMedium.DefaultSLATargets())
	comments := &mockCommentRepository{}
	pub := &recordingPublisher{}
	notifier := &recordingNotifier{}
	uc := NewAddCommentUseCase(newMockTicketRepository(tk), comments, trackings, newMockUserRepository(),
		notifier, pub, passthroughTx{}, logger.NewNop())
	ctx := context.Background()

	_, err := uc.Execute(ctx, AddCommentCommand{Actor: endUser, TicketID: 1, Body: "secret", Internal: true})
	assert.True(t, errors.IsForbiddenError(err))

	_, err = uc.Execute(ctx, AddCommentCommand{Actor: endUser, TicketID: 1, Body: "any news?"})
	require.NoError(t, err)
	assert.Nil(t, trackings.trackings[1].FirstResponseAt(), "requester replies do not count")

	_, err = uc.Execute(ctx, AddCommentCommand{Actor: agent, TicketID: 1, Body: "checking logs", Internal: true})
	require.NoError(t, err)
	assert.Nil(t, trackings.trackings[1].FirstResponseAt(), "internal notes do not count")

	_, err = uc.Execute(ctx, AddCommentCommand{Actor: agent, TicketID: 1, Body: "fixed, please retry"})
	require.NoError(t, err)
	assert.NotNil(t, trackings.trackings[1].FirstResponseAt())

	assert.Len(t, comments.comments, 3)
	require.Len(t, pub.events, 2, "internal comments are not broadcast")
	for _, e := range pub.events {
		assert.Equal(t, hubprotocol.EventTicketComment, e.event)
	}
	assert.Empty(t, notifier.events[1].Recipients, "requester is not told about internal notes")
}

func TestGetHistoryAndDelete(t *testing.T) {
	tk := testTicket(1, tenantA, endUser.UserID, vo.StatusOpen)
	repo := newMockTicketRepository(tk)
	history := &mockHistoryRepository{entries: []*ticket.HistoryEntry{{ID: 1, TicketID: 1, Field: "status", NewValue: "NEW"}}}

	entries, err := NewGetHistoryUseCase(repo, history, logger.NewNop()).Execute(context.Background(), endUser, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	del := NewDeleteTicketUseCase(repo, logger.NewNop())
	assert.True(t, errors.IsForbiddenError(del.Execute(context.Background(), agent, 1)))
	require.NoError(t, del.Execute(context.Background(), tenantAdm, 1))
	assert.Equal(t, []uint{1}, repo.deleted)
}

func TestGetTicketSLA(t *testing.T) {
	tk := testTicket(1, tenantA, endUser.UserID, vo.StatusOpen)
	trackings := newMockTrackingRepository()
	uc := NewGetTicketSLAUseCase(newMockTicketRepository(tk), trackings, logger.NewNop())

	_, err := uc.Execute(context.Background(), agent, 1)
	assert.True(t, errors.IsNotFoundError(err))

	trackings.trackings[1] = sla.NewTracking(1, nil, tk.CreatedAt(), vo.PriorityMedium.DefaultSLATargets())
	got, err := uc.Execute(context.Background(), agent, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.TicketID)
}

func TestCanView(t *testing.T) {
	tk := testTicket(1, tenantA, endUser.UserID, vo.StatusOpen)
	global := authorization.Actor{UserID: 1, Roles: authorization.Roles{authorization.RoleGlobalAdmin}}
	stranger := authorization.Actor{UserID: 11, TenantID: tenantA, Roles: authorization.Roles{authorization.RoleEndUser}}

	assert.True(t, CanView(endUser, tk))
	assert.True(t, CanView(agent, tk))
	assert.True(t, CanView(global, tk))
	assert.False(t, CanView(stranger, tk))
}
