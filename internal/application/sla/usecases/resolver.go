package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/servicedesk/internal/domain/sla"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
)

// PolicyResolver picks the SLA targets for a ticket: the tenant's active
// policy for the priority, then the default policy, then the built-in targets.
type PolicyResolver struct {
	policies sla.PolicyRepository
}

func NewPolicyResolver(policies sla.PolicyRepository) *PolicyResolver {
	return &PolicyResolver{policies: policies}
}

// Resolve returns the policy id (nil for built-in targets) and the targets.
func (r *PolicyResolver) Resolve(ctx context.Context, tenantID *uint, priority vo.Priority) (*uint, vo.SLATargets, error) {
	if tenantID != nil {
		p, err := r.policies.FindActive(ctx, tenantID, priority)
		if err != nil {
			return nil, vo.SLATargets{}, fmt.Errorf("failed to find tenant SLA policy: %w", err)
		}
		if p != nil {
			id := p.ID()
			return &id, p.Targets(), nil
		}
	}
	p, err := r.policies.FindActive(ctx, nil, priority)
	if err != nil {
		return nil, vo.SLATargets{}, fmt.Errorf("failed to find default SLA policy: %w", err)
	}
	if p != nil {
		id := p.ID()
		return &id, p.Targets(), nil
	}
	return nil, priority.DefaultSLATargets(), nil
}
