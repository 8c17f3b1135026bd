package ticket

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sladto "github.com/orris-inc/servicedesk/internal/application/sla/dto"
	"github.com/orris-inc/servicedesk/internal/application/ticket/dto"
	"github.com/orris-inc/servicedesk/internal/application/ticket/usecases"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/validators"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
)

func init() {
	if err := validators.Register(); err != nil {
		panic(err)
	}
}

type mockCreate struct {
	got    usecases.CreateTicketCommand
	called bool
	result *dto.TicketDTO
	err    error
}

func (m *mockCreate) Execute(_ context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketDTO, error) {
	m.got, m.called = cmd, true
	return m.result, m.err
}

type mockList struct {
	got    usecases.ListTicketsQuery
	result *usecases.ListTicketsResult
	err    error
}

func (m *mockList) Execute(_ context.Context, q usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error) {
	m.got = q
	return m.result, m.err
}

type mockGet struct {
	result *dto.TicketDTO
	err    error
}

func (m *mockGet) Execute(_ context.Context, _ authorization.Actor, _ uint) (*dto.TicketDTO, error) {
	return m.result, m.err
}

type mockStatus struct {
	got    usecases.ChangeStatusCommand
	called bool
	result *dto.TicketDTO
	err    error
}

func (m *mockStatus) Execute(_ context.Context, cmd usecases.ChangeStatusCommand) (*dto.TicketDTO, error) {
	m.got, m.called = cmd, true
	return m.result, m.err
}

type mockComment struct {
	got    usecases.AddCommentCommand
	result *dto.CommentDTO
	err    error
}

func (m *mockComment) Execute(_ context.Context, cmd usecases.AddCommentCommand) (*dto.CommentDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockSLA struct {
	result *sladto.TrackingDTO
	err    error
}

func (m *mockSLA) Execute(_ context.Context, _ authorization.Actor, _ uint) (*sladto.TrackingDTO, error) {
	return m.result, m.err
}

type mockDelete struct {
	gotID uint
	err   error
}

func (m *mockDelete) Execute(_ context.Context, _ authorization.Actor, id uint) error {
	m.gotID = id
	return m.err
}

func TestCreateTicket(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		create := &mockCreate{result: &dto.TicketDTO{ID: 7, Number: "TKT-20260101-0001", Status: "NEW", Priority: "HIGH"}}
		h := NewTicketHandler(UseCases{Create: create}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/tickets", map[string]any{
			"subject":     "VPN down",
			"description": "Cannot connect since this morning",
			"priority":    "high",
			"tags":        []string{"network"},
		})
		testutil.SetAuthContext(c, 3, testutil.TenantID(1), authorization.RoleEndUser)

		h.CreateTicket(c)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, uint(3), create.got.Actor.UserID)
		assert.Equal(t, "high", create.got.Priority)
		assert.Equal(t, []string{"network"}, create.got.Tags)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.True(t, resp.Success)
		var got dto.TicketDTO
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, "TKT-20260101-0001", got.Number)
	})

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing subject", map[string]any{"description": "x"}},
		{"missing description", map[string]any{"subject": "x"}},
		{"unknown priority", map[string]any{"subject": "x", "description": "y", "priority": "URGENT"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			create := &mockCreate{}
			h := NewTicketHandler(UseCases{Create: create}, testutil.NewMockLogger())

			c, w := testutil.NewTestContext(http.MethodPost, "/tickets", tt.body)
			testutil.SetAuthContext(c, 3, testutil.TenantID(1), authorization.RoleEndUser)

			h.CreateTicket(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, create.called)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Code)
		})
	}

	t.Run("unauthenticated", func(t *testing.T) {
		h := NewTicketHandler(UseCases{Create: &mockCreate{}}, testutil.NewMockLogger())
		c, w := testutil.NewTestContext(http.MethodPost, "/tickets", map[string]any{"subject": "a", "description": "b"})

		h.CreateTicket(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestListTickets(t *testing.T) {
	list := &mockList{result: &usecases.ListTicketsResult{
		Tickets:  []*dto.TicketDTO{{ID: 1}, {ID: 2}},
		Total:    42,
		Page:     2,
		PageSize: 2,
	}}
	h := NewTicketHandler(UseCases{List: list}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetQueryParams(c, map[string]string{
		"status":      "OPEN, IN_PROGRESS",
		"assignee_id": "9",
		"from":        "2026-01-01",
		"to":          "2026-01-31",
		"sort_by":     "priority",
		"page":        "2",
		"page_size":   "2",
	})
	testutil.SetAuthContext(c, 5, testutil.TenantID(1), authorization.RoleAgent)

	h.ListTickets(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"OPEN", "IN_PROGRESS"}, list.got.Statuses)
	require.NotNil(t, list.got.AssigneeID)
	assert.Equal(t, uint(9), *list.got.AssigneeID)
	require.NotNil(t, list.got.To)
	assert.Equal(t, 23, list.got.To.Hour())
	assert.Equal(t, "priority", list.got.SortBy)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, int64(42), data.Total)
	assert.Equal(t, 21, data.TotalPages)
}

func TestListTickets_BadFilter(t *testing.T) {
	h := NewTicketHandler(UseCases{List: &mockList{}}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetQueryParams(c, map[string]string{"assignee_id": "abc"})
	testutil.SetAuthContext(c, 5, testutil.TenantID(1), authorization.RoleAgent)

	h.ListTickets(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAssetTickets_ScopesToAsset(t *testing.T) {
	list := &mockList{result: &usecases.ListTicketsResult{Page: 1, PageSize: 20}}
	h := NewTicketHandler(UseCases{List: list}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/assets/4/tickets", nil)
	testutil.SetURLParam(c, "id", "4")
	testutil.SetAuthContext(c, 5, testutil.TenantID(1), authorization.RoleAgent)

	h.ListAssetTickets(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, list.got.AssetID)
	assert.Equal(t, uint(4), *list.got.AssetID)
}

func TestGetTicket_NotFound(t *testing.T) {
	h := NewTicketHandler(UseCases{Get: &mockGet{err: errors.NewNotFoundError("Ticket not found")}}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/99", nil)
	testutil.SetURLParam(c, "id", "99")
	testutil.SetAuthContext(c, 3, testutil.TenantID(1), authorization.RoleEndUser)

	h.GetTicket(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTicket_InvalidID(t *testing.T) {
	h := NewTicketHandler(UseCases{Get: &mockGet{}}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/abc", nil)
	testutil.SetURLParam(c, "id", "abc")
	testutil.SetAuthContext(c, 3, testutil.TenantID(1), authorization.RoleEndUser)

	h.GetTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangeStatus(t *testing.T) {
	t.Run("forwards status", func(t *testing.T) {
		status := &mockStatus{result: &dto.TicketDTO{ID: 1, Status: "IN_PROGRESS"}}
		h := NewTicketHandler(UseCases{ChangeStatus: status}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/status", map[string]string{"status": "IN_PROGRESS"})
		testutil.SetURLParam(c, "id", "1")
		testutil.SetAuthContext(c, 5, testutil.TenantID(1), authorization.RoleAgent)

		h.ChangeStatus(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(1), status.got.TicketID)
		assert.Equal(t, "IN_PROGRESS", status.got.Status)
	})

	t.Run("rejects unknown status before the use case", func(t *testing.T) {
		status := &mockStatus{}
		h := NewTicketHandler(UseCases{ChangeStatus: status}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/status", map[string]string{"status": "DONE"})
		testutil.SetURLParam(c, "id", "1")
		testutil.SetAuthContext(c, 5, testutil.TenantID(1), authorization.RoleAgent)

		h.ChangeStatus(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, status.called)
	})

	t.Run("illegal transition surfaces as 400", func(t *testing.T) {
		status := &mockStatus{err: errors.NewValidationError("invalid status transition", "NEW -> CLOSED")}
		h := NewTicketHandler(UseCases{ChangeStatus: status}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/status", map[string]string{"status": "CLOSED"})
		testutil.SetURLParam(c, "id", "1")
		testutil.SetAuthContext(c, 5, testutil.TenantID(1), authorization.RoleAgent)

		h.ChangeStatus(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAddComment(t *testing.T) {
	comment := &mockComment{result: &dto.CommentDTO{ID: 11, Body: "on it", Internal: true}}
	h := NewTicketHandler(UseCases{AddComment: comment}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/comments", map[string]any{"body": "on it", "internal": true})
	testutil.SetURLParam(c, "id", "1")
	testutil.SetAuthContext(c, 5, testutil.TenantID(1), authorization.RoleAgent)

	h.AddComment(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, comment.got.Internal)
	assert.Equal(t, uint(1), comment.got.TicketID)
}

func TestGetSLA_Forbidden(t *testing.T) {
	h := NewTicketHandler(UseCases{SLA: &mockSLA{err: errors.NewInsufficientPermissionsError()}}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/1/sla", nil)
	testutil.SetURLParam(c, "id", "1")
	testutil.SetAuthContext(c, 3, testutil.TenantID(1), authorization.RoleEndUser)

	h.GetSLA(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteTicket(t *testing.T) {
	del := &mockDelete{}
	h := NewTicketHandler(UseCases{Delete: del}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodDelete, "/tickets/8", nil)
	testutil.SetURLParam(c, "id", "8")
	testutil.SetAuthContext(c, 1, testutil.TenantID(1), authorization.RoleAdmin)

	h.DeleteTicket(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, uint(8), del.gotID)
}
