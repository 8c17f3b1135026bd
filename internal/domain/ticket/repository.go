package ticket

import (
	"context"
	"time"

	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
)

type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	List(ctx context.Context, filter Filter) ([]*Ticket, int64, error)
	// ListForReport returns every ticket matching filter without pagination.
	ListForReport(ctx context.Context, filter Filter) ([]*Ticket, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	ListByTicket(ctx context.Context, ticketID uint, includeInternal bool) ([]*Comment, error)
}

type HistoryRepository interface {
	CreateBatch(ctx context.Context, entries []*HistoryEntry) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*HistoryEntry, error)
}

// NumberGenerator issues human-readable ticket numbers.
type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}

type Filter struct {
	TenantID     *uint
	Statuses     []vo.TicketStatus
	Priority     *vo.Priority
	Category     string
	RequesterID  *uint
	AssigneeID   *uint
	TicketTypeID *uint
	AssetID      *uint
	Search       string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
