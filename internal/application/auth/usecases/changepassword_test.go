package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

func TestChangePasswordUseCase_Execute(t *testing.T) {
	u := testUser(1, "a@example.com", "oldpass123", true, uintPtr(1), authorization.RoleEndUser)
	updated := false
	repo := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) { return u, nil },
		UpdateFunc: func(ctx context.Context, u *user.User) error {
			updated = true
			return nil
		},
	}
	uc := NewChangePasswordUseCase(repo, fakeHasher{}, logger.NewNop())

	err := uc.Execute(context.Background(), ChangePasswordCommand{UserID: 1, CurrentPassword: "wrong", NewPassword: "newpass123"})
	assert.True(t, errors.IsValidationError(err))

	err = uc.Execute(context.Background(), ChangePasswordCommand{UserID: 1, CurrentPassword: "oldpass123", NewPassword: "short"})
	assert.True(t, errors.IsValidationError(err))
	assert.False(t, updated)

	err = uc.Execute(context.Background(), ChangePasswordCommand{UserID: 1, CurrentPassword: "oldpass123", NewPassword: "newpass123"})
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, "hashed:newpass123", u.PasswordHash())
}
