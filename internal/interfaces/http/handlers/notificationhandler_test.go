package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/servicedesk/internal/application/notification/dto"
	"github.com/orris-inc/servicedesk/internal/application/notification/usecases"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
)

type mockNotificationService struct {
	listQuery usecases.ListNotificationsQuery
	list      *usecases.ListNotificationsResult
	count     int64
	marked    uint
	markedAll int64
	deleted   uint
	err       error
}

func (m *mockNotificationService) List(_ context.Context, q usecases.ListNotificationsQuery) (*usecases.ListNotificationsResult, error) {
	m.listQuery = q
	return m.list, m.err
}

func (m *mockNotificationService) UnreadCount(_ context.Context, _ uint) (int64, error) {
	return m.count, m.err
}

func (m *mockNotificationService) MarkRead(_ context.Context, _ uint, id uint) (*dto.NotificationDTO, error) {
	m.marked = id
	if m.err != nil {
		return nil, m.err
	}
	return &dto.NotificationDTO{ID: id, Read: true}, nil
}

func (m *mockNotificationService) MarkAllRead(_ context.Context, _ uint) (int64, error) {
	return m.markedAll, m.err
}

func (m *mockNotificationService) Delete(_ context.Context, _ uint, id uint) error {
	m.deleted = id
	return m.err
}

type mockPreferenceService struct {
	userID uint
	inputs []usecases.PreferenceInput
	prefs  []*dto.PreferenceDTO
	err    error
}

func (m *mockPreferenceService) Get(_ context.Context, userID uint) ([]*dto.PreferenceDTO, error) {
	m.userID = userID
	return m.prefs, m.err
}

func (m *mockPreferenceService) Update(_ context.Context, userID uint, inputs []usecases.PreferenceInput) ([]*dto.PreferenceDTO, error) {
	m.userID, m.inputs = userID, inputs
	return m.prefs, m.err
}

func newTestNotificationHandler(n *mockNotificationService, p *mockPreferenceService) *NotificationHandler {
	if n == nil {
		n = &mockNotificationService{}
	}
	if p == nil {
		p = &mockPreferenceService{}
	}
	return NewNotificationHandler(n, p, testutil.NewMockLogger())
}

func TestListNotifications_UnreadFilter(t *testing.T) {
	svc := &mockNotificationService{list: &usecases.ListNotificationsResult{
		Notifications: []*dto.NotificationDTO{{ID: 1}},
		Total:         1,
		Page:          1,
		PageSize:      20,
	}}
	h := newTestNotificationHandler(svc, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/notifications", nil)
	testutil.SetQueryParams(c, map[string]string{"unread": "true"})
	testutil.SetAuthContext(c, 4, testutil.TenantID(1), authorization.RoleEndUser)

	h.ListNotifications(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(4), svc.listQuery.UserID)
	assert.True(t, svc.listQuery.UnreadOnly)
}

func TestUnreadCount(t *testing.T) {
	h := newTestNotificationHandler(&mockNotificationService{count: 3}, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/notifications/unread-count", nil)
	testutil.SetAuthContext(c, 4, testutil.TenantID(1), authorization.RoleEndUser)

	h.UnreadCount(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var got UnreadCountResponse
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, int64(3), got.Count)
}

func TestMarkRead_OtherUsersNotification(t *testing.T) {
	h := newTestNotificationHandler(&mockNotificationService{err: errors.NewNotFoundError("Notification not found")}, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/notifications/9/read", nil)
	testutil.SetURLParam(c, "id", "9")
	testutil.SetAuthContext(c, 4, testutil.TenantID(1), authorization.RoleEndUser)

	h.MarkRead(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkAllRead(t *testing.T) {
	h := newTestNotificationHandler(&mockNotificationService{markedAll: 5}, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/notifications/read-all", nil)
	testutil.SetAuthContext(c, 4, testutil.TenantID(1), authorization.RoleEndUser)

	h.MarkAllRead(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var got MarkAllReadResponse
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, int64(5), got.Updated)
}

func TestDeleteNotification(t *testing.T) {
	svc := &mockNotificationService{}
	h := newTestNotificationHandler(svc, nil)

	c, w := testutil.NewTestContext(http.MethodDelete, "/notifications/2", nil)
	testutil.SetURLParam(c, "id", "2")
	testutil.SetAuthContext(c, 4, testutil.TenantID(1), authorization.RoleEndUser)

	h.DeleteNotification(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, uint(2), svc.deleted)
}

func TestPreferences(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		prefs := &mockPreferenceService{prefs: []*dto.PreferenceDTO{{EventType: "TICKET_CREATED", InApp: true, Realtime: true}}}
		h := newTestNotificationHandler(nil, prefs)

		c, w := testutil.NewTestContext(http.MethodGet, "/notifications/preferences", nil)
		testutil.SetAuthContext(c, 4, testutil.TenantID(1), authorization.RoleEndUser)

		h.GetPreferences(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(4), prefs.userID)
	})

	t.Run("update", func(t *testing.T) {
		prefs := &mockPreferenceService{}
		h := newTestNotificationHandler(nil, prefs)

		c, w := testutil.NewTestContext(http.MethodPut, "/notifications/preferences", map[string]any{
			"preferences": []map[string]any{
				{"event_type": "TICKET_ASSIGNED", "in_app": true, "email": false, "realtime": false},
			},
		})
		testutil.SetAuthContext(c, 4, testutil.TenantID(1), authorization.RoleEndUser)

		h.UpdatePreferences(c)

		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, prefs.inputs, 1)
		assert.Equal(t, "TICKET_ASSIGNED", prefs.inputs[0].EventType)
		assert.False(t, prefs.inputs[0].Realtime)
	})

	t.Run("empty update rejected", func(t *testing.T) {
		h := newTestNotificationHandler(nil, &mockPreferenceService{})

		c, w := testutil.NewTestContext(http.MethodPut, "/notifications/preferences", map[string]any{"preferences": []any{}})
		testutil.SetAuthContext(c, 4, testutil.TenantID(1), authorization.RoleEndUser)

		h.UpdatePreferences(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
