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

func acmeTenants() *mockTenantRepository {
	return &mockTenantRepository{
		GetByCodeFunc: func(ctx context.Context, code string) (*tenant.Tenant, error) {
			if code != "acme" {
				return nil, nil
			}
			return tenant.ReconstructTenant(3, 1, "acme", "Acme", true, time.Now(), time.Now()), nil
		},
	}
}

func TestRegisterUseCase_Execute_Success(t *testing.T) {
	var created *user.User
	repo := &mockUserRepository{
		CreateFunc: func(ctx context.Context, u *user.User) error {
			u.SetID(10)
			created = u
			return nil
		},
	}
	uc := NewRegisterUseCase(repo, acmeTenants(), fakeHasher{}, &mockTokenService{}, logger.NewNop())

	result, err := uc.Execute(context.Background(), RegisterCommand{
		Email:      "New@Example.com",
		Password:   "password1",
		Name:       "New User",
		TenantCode: "ACME",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "new@example.com", created.Email().String())
	assert.Equal(t, "hashed:password1", created.PasswordHash())
	assert.True(t, created.IsActive())
	assert.Equal(t, []string{string(authorization.RoleEndUser)}, result.User.Roles)
	require.NotNil(t, result.User.TenantID)
	assert.Equal(t, uint(3), *result.User.TenantID)
}

func TestRegisterUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cmd     RegisterCommand
		exists  bool
		checkFn func(error) bool
	}{
		{
			name:    "duplicate email",
			cmd:     RegisterCommand{Email: "a@example.com", Password: "password1", Name: "A", TenantCode: "acme"},
			exists:  true,
			checkFn: errors.IsConflictError,
		},
		{
			name:    "unknown tenant",
			cmd:     RegisterCommand{Email: "a@example.com", Password: "password1", Name: "A", TenantCode: "other"},
			checkFn: errors.IsNotFoundError,
		},
		{
			name:    "weak password",
			cmd:     RegisterCommand{Email: "a@example.com", Password: "short", Name: "A", TenantCode: "acme"},
			checkFn: errors.IsValidationError,
		},
		{
			name:    "invalid email",
			cmd:     RegisterCommand{Email: "not-an-email", Password: "password1", Name: "A", TenantCode: "acme"},
			checkFn: errors.IsValidationError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepository{
				ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) { return tt.exists, nil },
			}
			uc := NewRegisterUseCase(repo, acmeTenants(), fakeHasher{}, &mockTokenService{}, logger.NewNop())
			_, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.True(t, tt.checkFn(err), "unexpected error: %v", err)
		})
	}
}
