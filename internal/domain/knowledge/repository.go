package knowledge

import "context"

type Repository interface {
	Create(ctx context.Context, a *Article) error
	Update(ctx context.Context, a *Article) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Article, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, filter Filter) ([]*Article, int64, error)
	// GetByIDs keeps the order of ids, skipping missing rows.
	GetByIDs(ctx context.Context, ids []uint) ([]*Article, error)
	IncrementViews(ctx context.Context, id uint) error
	AddVote(ctx context.Context, id uint, helpful bool) error
}

type Filter struct {
	// TenantID includes global (nil tenant) articles as well.
	TenantID *uint
	Statuses []Status
	Category string
	Search   string
	Page     int
	PageSize int
}

// SearchIndex is a full-text index over articles. Implementations may be unavailable.
type SearchIndex interface {
	Available() bool
	Index(ctx context.Context, a *Article) error
	Remove(ctx context.Context, id uint) error
	// Search returns matching article IDs by relevance and the estimated total.
	Search(ctx context.Context, q SearchQuery) ([]uint, int64, error)
}

type SearchQuery struct {
	Text     string
	TenantID *uint
	Statuses []Status
	Category string
	Offset   int
	Limit    int
}
