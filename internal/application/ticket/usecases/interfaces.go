package usecases

import (
	"context"

	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
)

type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SLAResolver returns the policy id and targets that apply to a ticket.
type SLAResolver interface {
	Resolve(ctx context.Context, tenantID *uint, priority vo.Priority) (*uint, vo.SLATargets, error)
}
