package asset

import "context"

type Repository interface {
	Create(ctx context.Context, a *Asset) error
	Update(ctx context.Context, a *Asset) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Asset, error)
	ExistsByTag(ctx context.Context, tag string) (bool, error)
	List(ctx context.Context, filter Filter) ([]*Asset, int64, error)
}

type Filter struct {
	TenantID   *uint
	Type       *Type
	Status     *Status
	AssigneeID *uint
	Search     string
	Page       int
	PageSize   int
}
