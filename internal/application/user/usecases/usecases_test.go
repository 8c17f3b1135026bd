package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/servicedesk/internal/domain/tenant"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

func tenants() *mockTenantRepository {
	now := time.Now()
	return &mockTenantRepository{tenants: map[uint]*tenant.Tenant{
		1: tenant.ReconstructTenant(1, 1, "acme", "Acme", true, now, now),
		2: tenant.ReconstructTenant(2, 1, "globex", "Globex", true, now, now),
	}}
}

func TestCreateUserUseCase_TenantAdminCreatesInOwnTenant(t *testing.T) {
	repo := newMockUserRepository()
	uc := NewCreateUserUseCase(repo, tenants(), fakeHasher{}, logger.NewNop())

	result, err := uc.Execute(context.Background(), CreateUserCommand{
		Actor:    adminOf(1),
		Email:    "agent@acme.test",
		Name:     "Agent",
		Password: "password1",
		Roles:    []string{"agent"},
		TenantID: uintPtr(2),
	})
	require.NoError(t, err)
	require.NotNil(t, result.TenantID)
	assert.Equal(t, uint(1), *result.TenantID, "tenant admin cannot pick another tenant")
	assert.Equal(t, []string{"AGENT"}, result.Roles)
}

func TestCreateUserUseCase_Errors(t *testing.T) {
	existing := testUser(5, "taken@acme.test", true, uintPtr(1), authorization.RoleEndUser)

	tests := []struct {
		name    string
		cmd     CreateUserCommand
		checkFn func(error) bool
	}{
		{
			name:    "tenant admin grants global admin",
			cmd:     CreateUserCommand{Actor: adminOf(1), Email: "x@acme.test", Name: "X", Password: "password1", Roles: []string{"GLOBAL_ADMIN"}},
			checkFn: errors.IsForbiddenError,
		},
		{
			name:    "unknown role",
			cmd:     CreateUserCommand{Actor: adminOf(1), Email: "x@acme.test", Name: "X", Password: "password1", Roles: []string{"ROOT"}},
			checkFn: errors.IsValidationError,
		},
		{
			name:    "duplicate email",
			cmd:     CreateUserCommand{Actor: adminOf(1), Email: "taken@acme.test", Name: "X", Password: "password1", Roles: []string{"AGENT"}},
			checkFn: errors.IsConflictError,
		},
		{
			name:    "global admin creates tenantless agent",
			cmd:     CreateUserCommand{Actor: globalAdmin(), Email: "x@acme.test", Name: "X", Password: "password1", Roles: []string{"AGENT"}},
			checkFn: errors.IsValidationError,
		},
		{
			name:    "unknown tenant",
			cmd:     CreateUserCommand{Actor: globalAdmin(), Email: "x@acme.test", Name: "X", Password: "password1", Roles: []string{"AGENT"}, TenantID: uintPtr(9)},
			checkFn: errors.IsNotFoundError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewCreateUserUseCase(newMockUserRepository(existing), tenants(), fakeHasher{}, logger.NewNop())
			_, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.True(t, tt.checkFn(err), "unexpected error: %v", err)
		})
	}
}

func TestGetUserUseCase_TenantIsolation(t *testing.T) {
	other := testUser(7, "x@globex.test", true, uintPtr(2), authorization.RoleEndUser)
	root := testUser(8, "root@example.test", true, nil, authorization.RoleGlobalAdmin)
	uc := NewGetUserUseCase(newMockUserRepository(other, root), logger.NewNop())

	_, err := uc.Execute(context.Background(), adminOf(1), 7)
	assert.True(t, errors.IsNotFoundError(err))

	_, err = uc.Execute(context.Background(), adminOf(1), 8)
	assert.True(t, errors.IsNotFoundError(err))

	got, err := uc.Execute(context.Background(), globalAdmin(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.ID)
}

func TestSetUserActiveUseCase(t *testing.T) {
	target := testUser(3, "a@acme.test", true, uintPtr(1), authorization.RoleAgent)
	repo := newMockUserRepository(target)
	uc := NewSetUserActiveUseCase(repo, logger.NewNop())

	_, err := uc.Execute(context.Background(), SetUserActiveCommand{Actor: adminOf(1), UserID: 1, Active: false})
	assert.True(t, errors.IsValidationError(err), "self deactivation is rejected")

	got, err := uc.Execute(context.Background(), SetUserActiveCommand{Actor: adminOf(1), UserID: 3, Active: false})
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, 1, repo.updated)
}

func TestSetUserRolesUseCase(t *testing.T) {
	target := testUser(3, "a@acme.test", true, uintPtr(1), authorization.RoleEndUser)

	t.Run("only global admin grants global admin", func(t *testing.T) {
		uc := NewSetUserRolesUseCase(newMockUserRepository(target), logger.NewNop())
		_, err := uc.Execute(context.Background(), SetUserRolesCommand{Actor: adminOf(1), UserID: 3, Roles: []string{"GLOBAL_ADMIN"}})
		require.Error(t, err)
		assert.Equal(t, 403, errors.GetAppError(err).Code)
	})

	t.Run("replaces roles", func(t *testing.T) {
		uc := NewSetUserRolesUseCase(newMockUserRepository(target), logger.NewNop())
		got, err := uc.Execute(context.Background(), SetUserRolesCommand{Actor: adminOf(1), UserID: 3, Roles: []string{"AGENT", "agent", "IT_MANAGER"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"AGENT", "IT_MANAGER"}, got.Roles)
	})

	t.Run("global admin grants global admin", func(t *testing.T) {
		uc := NewSetUserRolesUseCase(newMockUserRepository(target), logger.NewNop())
		got, err := uc.Execute(context.Background(), SetUserRolesCommand{Actor: globalAdmin(), UserID: 3, Roles: []string{"GLOBAL_ADMIN"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"GLOBAL_ADMIN"}, got.Roles)
	})
}

func TestDeleteUserUseCase(t *testing.T) {
	target := testUser(3, "a@acme.test", true, uintPtr(1), authorization.RoleAgent)
	repo := newMockUserRepository(target)
	uc := NewDeleteUserUseCase(repo, logger.NewNop())

	assert.True(t, errors.IsValidationError(uc.Execute(context.Background(), adminOf(1), 1)))
	require.NoError(t, uc.Execute(context.Background(), adminOf(1), 3))
	assert.Equal(t, []uint{3}, repo.deleted)
}

func TestListAgentsUseCase_FiltersInactiveAndScopesTenant(t *testing.T) {
	var gotTenant *uint
	repo := newMockUserRepository()
	repo.ListByRolesFunc = func(ctx context.Context, tenantID *uint, roles []authorization.Role) ([]*user.User, error) {
		gotTenant = tenantID
		assert.ElementsMatch(t, authorization.AssignableRoles, roles)
		return []*user.User{
			testUser(3, "a@acme.test", true, uintPtr(1), authorization.RoleAgent),
			testUser(4, "b@acme.test", false, uintPtr(1), authorization.RoleAgent),
		}, nil
	}
	uc := NewListAgentsUseCase(repo, logger.NewNop())

	agents, err := uc.Execute(context.Background(), authorization.Actor{UserID: 3, TenantID: uintPtr(1), Roles: authorization.Roles{authorization.RoleAgent}}, uintPtr(2))
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, uint(3), agents[0].ID)
	require.NotNil(t, gotTenant)
	assert.Equal(t, uint(1), *gotTenant)
}

func TestListUsersUseCase_InvalidRole(t *testing.T) {
	uc := NewListUsersUseCase(newMockUserRepository(), logger.NewNop())
	_, err := uc.Execute(context.Background(), ListUsersQuery{Actor: adminOf(1), Role: "NOPE"})
	assert.True(t, errors.IsValidationError(err))
}
