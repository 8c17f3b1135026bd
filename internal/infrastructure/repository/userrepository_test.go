package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/servicedesk/internal/domain/user"
	vo "github.com/orris-inc/servicedesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

func newTestUser(t *testing.T, email string, tenantID *uint, roles ...authorization.Role) *user.User {
	t.Helper()
	addr, err := vo.NewEmail(email)
	require.NoError(t, err)
	u, err := user.NewUser(addr, "User "+email, "hash", tenantID, roles)
	require.NoError(t, err)
	return u
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), logger.NewNop())
	ctx := context.Background()

	u := newTestUser(t, "agent@acme.test", uintPtr(1), authorization.RoleAgent, authorization.RoleITManager)
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID())

	byID, err := repo.GetByID(ctx, u.ID())
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "agent@acme.test", byID.Email().String())
	assert.ElementsMatch(t, authorization.Roles{authorization.RoleAgent, authorization.RoleITManager}, byID.Roles())

	byEmail, err := repo.GetByEmail(ctx, "agent@acme.test")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID(), byEmail.ID())

	missing, err := repo.GetByEmail(ctx, "nobody@acme.test")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_UpdateReplacesRoles(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), logger.NewNop())
	ctx := context.Background()

	u := newTestUser(t, "jo@acme.test", uintPtr(1), authorization.RoleEndUser)
	require.NoError(t, repo.Create(ctx, u))

	require.NoError(t, u.SetRoles(authorization.Roles{authorization.RoleAgent}))
	u.Deactivate()
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, authorization.Roles{authorization.RoleAgent}, got.Roles())
	assert.False(t, got.IsActive())
}

func TestUserRepository_ListAndRoles(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), logger.NewNop())
	ctx := context.Background()

	agent := newTestUser(t, "agent@acme.test", uintPtr(1), authorization.RoleAgent)
	manager := newTestUser(t, "boss@acme.test", uintPtr(1), authorization.RoleITManager)
	requester := newTestUser(t, "req@acme.test", uintPtr(1), authorization.RoleEndUser)
	otherTenant := newTestUser(t, "agent@other.test", uintPtr(2), authorization.RoleAgent)
	for _, u := range []*user.User{agent, manager, requester, otherTenant} {
		require.NoError(t, repo.Create(ctx, u))
	}

	staff, err := repo.ListByRoles(ctx, uintPtr(1), authorization.AssignableRoles)
	require.NoError(t, err)
	assert.Len(t, staff, 2)

	role := authorization.RoleAgent
	list, total, err := repo.List(ctx, user.Filter{Role: &role, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	list, total, err = repo.List(ctx, user.Filter{TenantID: uintPtr(1), Search: "boss", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, manager.ID(), list[0].ID())

	byIDs, err := repo.GetByIDs(ctx, []uint{agent.ID(), requester.ID()})
	require.NoError(t, err)
	assert.Len(t, byIDs, 2)
}

func TestUserRepository_SoftDelete(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), logger.NewNop())
	ctx := context.Background()

	u := newTestUser(t, "gone@acme.test", uintPtr(1), authorization.RoleEndUser)
	require.NoError(t, repo.Create(ctx, u))
	require.NoError(t, repo.Delete(ctx, u.ID()))

	got, err := repo.GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.Nil(t, got)

	// the address stays reserved
	exists, err := repo.ExistsByEmail(ctx, "gone@acme.test")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Error(t, repo.Delete(ctx, u.ID()))
}
