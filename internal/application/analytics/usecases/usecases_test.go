package usecases

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

type mockTicketRepository struct {
	ticket.Repository
	tickets    []*ticket.Ticket
	calls      int
	lastFilter ticket.Filter
}

func (m *mockTicketRepository) ListForReport(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, error) {
	m.calls++
	m.lastFilter = filter
	return m.tickets, nil
}

type mockTrackingRepository struct {
	sla.TrackingRepository
	trackings map[uint]*sla.Tracking
}

func (m *mockTrackingRepository) ListByTicketIDs(ctx context.Context, ids []uint) (map[uint]*sla.Tracking, error) {
	return m.trackings, nil
}

type mockUserRepository struct {
	user.Repository
	users map[uint]*user.User
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*user.User, error) {
	return m.users, nil
}

// memoryCache stores JSON like the redis cache does.
type memoryCache struct {
	data map[string][]byte
}

func (c *memoryCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

var created = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func uintPtr(v uint) *uint { return &v }

func testUser(id uint, name string) *user.User {
	e, _ := uvo.NewEmail(fmt.Sprintf("%s@example.com", strings.ToLower(name)))
	return user.ReconstructUser(id, uintPtr(1), e, name, "h", true, authorization.Roles{authorization.RoleAgent}, nil, created, created)
}

func fixtures(t *testing.T) (*mockTicketRepository, *mockTrackingRepository, *mockUserRepository) {
	resolved := created.Add(90 * time.Minute)
	closed, err := ticket.ReconstructTicket(ticket.State{
		ID: 1, Number: "INC-20260302-0001", TenantID: uintPtr(1), Subject: `Printer "jam"`, Description: "d",
		Category: "HARDWARE", Priority: vo.PriorityHigh, Status: vo.StatusResolved, RequesterID: 3,
		AssigneeID: uintPtr(7), ResolvedAt: &resolved, CreatedAt: created, UpdatedAt: created,
	})
	require.NoError(t, err)
	open, err := ticket.ReconstructTicket(ticket.State{
		ID: 2, Number: "INC-20260302-0002", TenantID: uintPtr(1), Subject: "VPN", Description: "d",
		Category: "NETWORK", Priority: vo.PriorityLow, Status: vo.StatusInProgress, RequesterID: 3,
		CreatedAt: created, UpdatedAt: created,
	})
	require.NoError(t, err)

	tr := sla.NewTracking(1, nil, created, vo.PriorityHigh.DefaultSLATargets())
	tr.RecordFirstResponse(created.Add(10 * time.Minute))
	tr.RecordResolution(resolved)

	return &mockTicketRepository{tickets: []*ticket.Ticket{closed, open}},
		&mockTrackingRepository{trackings: map[uint]*sla.Tracking{1: tr}},
		&mockUserRepository{users: map[uint]*user.User{3: testUser(3, "Requester"), 7: testUser(7, "Agent")}}
}

var manager = authorization.Actor{UserID: 5, TenantID: uintPtr(1), Roles: authorization.Roles{authorization.RoleITManager}}

func TestOverview_UsesCache(t *testing.T) {
	tickets, trackings, users := fixtures(t)
	cache := &memoryCache{data: map[string][]byte{}}
	uc := NewAnalyticsUseCases(tickets, trackings, users, cache, 0, logger.NewNop())

	first, err := uc.Overview(context.Background(), ReportQuery{Actor: manager})
	require.NoError(t, err)
	second, err := uc.Overview(context.Background(), ReportQuery{Actor: manager})
	require.NoError(t, err)

	assert.Equal(t, 1, tickets.calls, "second call is served from cache")
	assert.Equal(t, first, second)
	assert.Equal(t, int64(2), first.Total)
	assert.Equal(t, 90.0, first.MTTRMinutes)
	assert.Equal(t, 100.0, first.SLACompliancePercent)
	assert.Len(t, cache.data, 1)
}

func TestAgents_AgentSeesOwnRow(t *testing.T) {
	tickets, trackings, users := fixtures(t)
	uc := NewAnalyticsUseCases(tickets, trackings, users, nil, 0, logger.NewNop())
	agent := authorization.Actor{UserID: 7, TenantID: uintPtr(1), Roles: authorization.Roles{authorization.RoleAgent}}

	stats, err := uc.Agents(context.Background(), ReportQuery{Actor: agent})
	require.NoError(t, err)
	require.NotNil(t, tickets.lastFilter.AssigneeID)
	assert.Equal(t, uint(7), *tickets.lastFilter.AssigneeID)
	require.Len(t, stats, 1)
	assert.Equal(t, "Agent", stats[0].Name)
	assert.Equal(t, int64(1), stats[0].Resolved)
}

func TestReportQuery_Validation(t *testing.T) {
	tickets, trackings, users := fixtures(t)
	uc := NewAnalyticsUseCases(tickets, trackings, users, nil, 0, logger.NewNop())
	from := created
	to := created.Add(-time.Hour)

	_, err := uc.Overview(context.Background(), ReportQuery{Actor: manager, From: &from, To: &to})
	assert.True(t, errors.IsValidationError(err))
	_, err = uc.SLA(context.Background(), ReportQuery{Actor: manager, Priority: "URGENT"})
	assert.True(t, errors.IsValidationError(err))

	global := authorization.Actor{UserID: 1, Roles: authorization.Roles{authorization.RoleGlobalAdmin}}
	_, err = uc.SLA(context.Background(), ReportQuery{Actor: global, TenantID: uintPtr(9), Status: "resolved"})
	require.NoError(t, err)
	assert.Equal(t, uint(9), *tickets.lastFilter.TenantID)
	assert.Equal(t, []vo.TicketStatus{vo.StatusResolved}, tickets.lastFilter.Statuses)
}

func TestTrend_DefaultRange(t *testing.T) {
	tickets, trackings, users := fixtures(t)
	uc := NewAnalyticsUseCases(tickets, trackings, users, nil, 0, logger.NewNop())
	from := created
	to := created.Add(48 * time.Hour)

	points, err := uc.Trend(context.Background(), ReportQuery{Actor: manager, From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, int64(2), points[0].Created)
	assert.Equal(t, int64(1), points[0].Resolved)

	far := created.Add(-400 * 24 * time.Hour)
	_, err = uc.Trend(context.Background(), ReportQuery{Actor: manager, From: &far, To: &to})
	assert.True(t, errors.IsValidationError(err))
}

func TestTrend_OpenRangeIsCached(t *testing.T) {
	tickets, trackings, users := fixtures(t)
	cache := &memoryCache{data: map[string][]byte{}}
	uc := NewAnalyticsUseCases(tickets, trackings, users, cache, time.Minute, logger.NewNop())

	restore := biztime.SetNowForTest(created.Add(24*time.Hour + 10*time.Second))
	_, err := uc.Trend(context.Background(), ReportQuery{Actor: manager})
	restore()
	require.NoError(t, err)

	restore = biztime.SetNowForTest(created.Add(24*time.Hour + 40*time.Second))
	defer restore()
	_, err = uc.Trend(context.Background(), ReportQuery{Actor: manager})
	require.NoError(t, err)

	assert.Equal(t, 1, tickets.calls, "second request within the minute hits the cache")
	assert.Len(t, cache.data, 1)
}

func TestExport_Headers(t *testing.T) {
	tests := []struct {
		report string
		header []string
		rows   int
	}{
		{ReportTickets, TicketsHeader, 2},
		{ReportAgents, AgentsHeader, 1},
		{ReportSLA, SLAHeader, 1},
	}
	for _, tt := range tests {
		t.Run(tt.report, func(t *testing.T) {
			tickets, trackings, users := fixtures(t)
			uc := NewAnalyticsUseCases(tickets, trackings, users, nil, 0, logger.NewNop())
			var buf bytes.Buffer

			name, err := uc.Export(context.Background(), ReportQuery{Actor: manager}, tt.report, &buf)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(name, tt.report+"-report-"))

			lines := strings.Split(strings.TrimSuffix(buf.String(), "\r\n"), "\r\n")
			require.Len(t, lines, tt.rows+1)
			quoted := make([]string, len(tt.header))
			for i, h := range tt.header {
				quoted[i] = `"` + h + `"`
			}
			assert.Equal(t, strings.Join(quoted, ","), lines[0])
		})
	}
}

func TestExport_TicketRow(t *testing.T) {
	tickets, trackings, users := fixtures(t)
	uc := NewAnalyticsUseCases(tickets, trackings, users, nil, 0, logger.NewNop())
	var buf bytes.Buffer

	_, err := uc.Export(context.Background(), ReportQuery{Actor: manager}, ReportTickets, &buf)
	require.NoError(t, err)

	lines := strings.Split(buf.String(), "\r\n")
	assert.Equal(t,
		`"INC-20260302-0001","Printer ""jam""","Resolved","High","HARDWARE","Requester","Agent","2026-03-02T09:00:00Z","2026-03-02T10:30:00Z","","90.00","No"`,
		lines[1])
	assert.Contains(t, lines[2], `"In Progress","Low"`)
}

func TestExport_UnknownReport(t *testing.T) {
	tickets, trackings, users := fixtures(t)
	uc := NewAnalyticsUseCases(tickets, trackings, users, nil, 0, logger.NewNop())

	_, err := uc.Export(context.Background(), ReportQuery{Actor: manager}, "payroll", &bytes.Buffer{})
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, 0, tickets.calls)
}
