package sla

import (
	"context"
	"time"

	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
)

type PolicyRepository interface {
	Create(ctx context.Context, p *Policy) error
	Update(ctx context.Context, p *Policy) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Policy, error)
	// List returns tenant policies plus defaults when tenantID is set, all policies otherwise.
	List(ctx context.Context, tenantID *uint) ([]*Policy, error)
	// FindActive prefers the tenant policy and falls back to the default (nil tenant) one.
	FindActive(ctx context.Context, tenantID *uint, priority vo.Priority) (*Policy, error)
}

type TrackingRepository interface {
	Create(ctx context.Context, t *Tracking) error
	Update(ctx context.Context, t *Tracking) error
	GetByTicketID(ctx context.Context, ticketID uint) (*Tracking, error)
	ListByTicketIDs(ctx context.Context, ticketIDs []uint) (map[uint]*Tracking, error)
	// ListPendingDue returns trackings with an unrecorded target before now that is not yet flagged.
	ListPendingDue(ctx context.Context, now time.Time, limit int) ([]*Tracking, error)
}
