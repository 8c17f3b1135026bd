package user

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/shared/authorization"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	// Update persists profile fields and replaces role assignments.
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter Filter) ([]*User, int64, error)
	// ListByRoles returns active users holding any of roles, scoped to tenantID when set.
	ListByRoles(ctx context.Context, tenantID *uint, roles []authorization.Role) ([]*User, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*User, error)
	UpdateLastLogin(ctx context.Context, u *User) error
}

type Filter struct {
	TenantID *uint
	Role     *authorization.Role
	Active   *bool
	Search   string
	Page     int
	PageSize int
}
