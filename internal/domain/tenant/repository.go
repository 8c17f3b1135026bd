package tenant

import "context"

type OrganizationRepository interface {
	Create(ctx context.Context, o *Organization) error
	Update(ctx context.Context, o *Organization) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Organization, error)
	List(ctx context.Context, page, pageSize int) ([]*Organization, int64, error)
	CountTenants(ctx context.Context, organizationID uint) (int64, error)
}

type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	Update(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id uint) (*Tenant, error)
	GetByCode(ctx context.Context, code string) (*Tenant, error)
	List(ctx context.Context, filter Filter) ([]*Tenant, int64, error)
}

type Filter struct {
	OrganizationID *uint
	// ID restricts the listing to one tenant, used for tenant admins.
	ID       *uint
	Active   *bool
	Search   string
	Page     int
	PageSize int
}
