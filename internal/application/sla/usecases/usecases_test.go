package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/servicedesk/internal/domain/notification"
	"github.com/orris-inc/servicedesk/internal/domain/sla"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	uvo "github.com/orris-inc/servicedesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

func policy(id uint, tenantID *uint, p vo.Priority, fr, res int) *sla.Policy {
	now := time.Now()
	return sla.ReconstructPolicy(id, tenantID, "policy", p, fr, res, true, now, now)
}

func TestPolicyResolver_Resolve(t *testing.T) {
	repo := newMockPolicyRepository(
		policy(1, uintPtr(5), vo.PriorityHigh, 30, 120),
		policy(2, nil, vo.PriorityHigh, 45, 240),
	)
	r := NewPolicyResolver(repo)

	id, targets, err := r.Resolve(context.Background(), uintPtr(5), vo.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, uint(1), *id)
	assert.Equal(t, 30*time.Minute, targets.FirstResponse)

	id, targets, err = r.Resolve(context.Background(), uintPtr(6), vo.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, uint(2), *id, "falls back to the default policy")
	assert.Equal(t, 4*time.Hour, targets.Resolution)

	id, targets, err = r.Resolve(context.Background(), uintPtr(6), vo.PriorityCritical)
	require.NoError(t, err)
	assert.Nil(t, id, "built-in targets have no policy")
	assert.Equal(t, 15*time.Minute, targets.FirstResponse)
	assert.Equal(t, 4*time.Hour, targets.Resolution)
}

func TestPolicyUseCases_Validation(t *testing.T) {
	uc := NewPolicyUseCases(newMockPolicyRepository(), logger.NewNop())
	manager := authorization.Actor{UserID: 2, TenantID: uintPtr(5), Roles: authorization.Roles{authorization.RoleITManager}}

	_, err := uc.Create(context.Background(), PolicyCommand{Actor: manager, Name: "p", Priority: "HIGH", FirstResponseMinutes: 0, ResolutionMinutes: 60})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Create(context.Background(), PolicyCommand{Actor: manager, Name: "p", Priority: "HIGH", FirstResponseMinutes: 60, ResolutionMinutes: 30})
	assert.True(t, errors.IsValidationError(err), "resolution must not be shorter than first response")

	got, err := uc.Create(context.Background(), PolicyCommand{Actor: manager, Name: "p", Priority: "HIGH", FirstResponseMinutes: 30, ResolutionMinutes: 30, Default: true})
	require.NoError(t, err)
	require.NotNil(t, got.TenantID, "only global admins create defaults")
	assert.Equal(t, uint(5), *got.TenantID)
}

func TestPolicyUseCases_DefaultPoliciesReservedForGlobalAdmin(t *testing.T) {
	repo := newMockPolicyRepository(policy(2, nil, vo.PriorityHigh, 45, 240))
	uc := NewPolicyUseCases(repo, logger.NewNop())
	manager := authorization.Actor{UserID: 2, TenantID: uintPtr(5), Roles: authorization.Roles{authorization.RoleITManager}}
	root := authorization.Actor{UserID: 1, Roles: authorization.Roles{authorization.RoleGlobalAdmin}}

	assert.True(t, errors.IsForbiddenError(uc.Delete(context.Background(), manager, 2)))
	require.NoError(t, uc.Delete(context.Background(), root, 2))
	assert.Equal(t, []uint{2}, repo.deleted)
}

func TestSweepBreachesUseCase(t *testing.T) {
	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	restore := biztime.SetNowForTest(created.Add(2 * time.Hour))
	defer restore()

	targets := vo.SLATargets{FirstResponse: time.Hour, Resolution: 8 * time.Hour}
	assigned := sla.NewTracking(1, nil, created, targets)
	unassigned := sla.NewTracking(2, nil, created, targets)
	notDue := sla.NewTracking(3, nil, created, vo.SLATargets{FirstResponse: 4 * time.Hour, Resolution: 8 * time.Hour})

	t1, err := ticket.ReconstructTicket(ticket.State{ID: 1, Number: "INC-20240301-0001", TenantID: uintPtr(5), Subject: "VPN down", Description: "d", Category: "GENERAL", Priority: vo.PriorityHigh, Status: vo.StatusOpen, RequesterID: 9, AssigneeID: uintPtr(4), Version: 1, CreatedAt: created, UpdatedAt: created})
	require.NoError(t, err)
	t2, err := ticket.ReconstructTicket(ticket.State{ID: 2, Number: "INC-20240301-0002", TenantID: uintPtr(5), Subject: "Printer", Description: "d", Category: "GENERAL", Priority: vo.PriorityHigh, Status: vo.StatusNew, RequesterID: 9, Version: 1, CreatedAt: created, UpdatedAt: created})
	require.NoError(t, err)

	email, _ := uvo.NewEmail("mgr@example.com")
	manager := user.ReconstructUser(7, uintPtr(5), email, "Mgr", "h", true, authorization.Roles{authorization.RoleITManager}, nil, created, created)

	trackings := &mockTrackingRepository{pending: []*sla.Tracking{assigned, unassigned, notDue}}
	notifier := &recordingNotifier{}
	uc := NewSweepBreachesUseCase(
		trackings,
		&mockTicketRepository{tickets: map[uint]*ticket.Ticket{1: t1, 2: t2}},
		&mockUserRepository{managers: []*user.User{manager}},
		notifier,
		logger.NewNop(),
	)

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Checked)
	assert.Equal(t, 2, result.Breached)
	assert.Equal(t, []uint{1, 2}, trackings.updated)
	assert.True(t, assigned.FirstResponseBreached())
	assert.False(t, assigned.ResolutionBreached())
	assert.False(t, notDue.FirstResponseBreached())

	require.Len(t, notifier.events, 2)
	assert.Equal(t, notification.EventSLABreached, notifier.events[0].Type)
	assert.Equal(t, []uint{4}, notifier.events[0].Recipients)
	assert.Equal(t, []uint{7}, notifier.events[1].Recipients, "unassigned tickets go to managers")

	// flags are raised once
	assert.False(t, assigned.Evaluate(biztime.NowUTC()).Any())
}
