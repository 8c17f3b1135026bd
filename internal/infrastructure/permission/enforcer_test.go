package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/orris-inc/servicedesk/internal/domain/permission"
	vo "github.com/orris-inc/servicedesk/internal/domain/permission/value_objects"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

func newTestEnforcer(t *testing.T) (*Enforcer, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	e, err := NewEnforcer(db, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, InitDefaultPermissions(e))
	return e, db
}

func TestEnforcer_DefaultPolicies(t *testing.T) {
	e, _ := newTestEnforcer(t)

	tests := []struct {
		name     string
		roles    []string
		resource vo.Resource
		action   vo.Action
		want     bool
	}{
		{"end user reads tickets", []string{"END_USER"}, vo.ResourceTickets, vo.ActionRead, true},
		{"end user cannot assign", []string{"END_USER"}, vo.ResourceTickets, vo.ActionAssign, false},
		{"agent assigns", []string{"AGENT"}, vo.ResourceTickets, vo.ActionAssign, true},
		{"agent cannot delete tickets", []string{"AGENT"}, vo.ResourceTickets, vo.ActionDelete, false},
		{"any held role suffices", []string{"END_USER", "ADMIN"}, vo.ResourceTickets, vo.ActionDelete, true},
		{"wildcard action", []string{"END_USER"}, vo.ResourceNotifications, vo.ActionDelete, true},
		{"organizations are global admin only", []string{"ADMIN"}, vo.ResourceOrganizations, vo.ActionRead, false},
		{"global admin organizations", []string{"GLOBAL_ADMIN"}, vo.ResourceOrganizations, vo.ActionWrite, true},
		{"manager reads users", []string{"IT_MANAGER"}, vo.ResourceUsers, vo.ActionRead, true},
		{"manager cannot write users", []string{"IT_MANAGER"}, vo.ResourceUsers, vo.ActionWrite, false},
		{"no roles", nil, vo.ResourceTickets, vo.ActionRead, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Enforce(tt.roles, tt.resource, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnforcer_PersistsAndReloads(t *testing.T) {
	e, db := newTestEnforcer(t)

	extra := permission.Policy{Role: "AGENT", Resource: vo.ResourceAnalytics, Action: vo.ActionExport}
	require.NoError(t, e.AddPolicies([]permission.Policy{extra}))

	reloaded, err := NewEnforcer(db, logger.NewNop())
	require.NoError(t, err)
	ok, err := reloaded.Enforce([]string{"AGENT"}, vo.ResourceAnalytics, vo.ActionExport)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, reloaded.RemovePolicy(extra))
	ok, err = reloaded.Enforce([]string{"AGENT"}, vo.ResourceAnalytics, vo.ActionExport)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInitDefaultPermissions_Idempotent(t *testing.T) {
	e, _ := newTestEnforcer(t)
	before, err := e.Policies()
	require.NoError(t, err)

	require.NoError(t, InitDefaultPermissions(e))
	after, err := e.Policies()
	require.NoError(t, err)
	assert.Len(t, after, len(before))
	assert.Len(t, before, len(DefaultPolicies()))
}
