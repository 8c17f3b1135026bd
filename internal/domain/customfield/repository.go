package customfield

import "context"

type TicketTypeRepository interface {
	Create(ctx context.Context, t *TicketType) error
	Update(ctx context.Context, t *TicketType) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*TicketType, error)
	// List returns global types plus the tenant's when tenantID is set.
	List(ctx context.Context, tenantID *uint, activeOnly bool) ([]*TicketType, error)
}

type FieldRepository interface {
	Create(ctx context.Context, f *CustomField) error
	Update(ctx context.Context, f *CustomField) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*CustomField, error)
	// ListForType returns fields bound to ticketTypeID plus fields bound to no type.
	ListForType(ctx context.Context, ticketTypeID *uint, activeOnly bool) ([]*CustomField, error)
	KeyExists(ctx context.Context, ticketTypeID *uint, key string) (bool, error)
}
