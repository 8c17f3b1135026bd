package usecases

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/application/sla/dto"
	"github.com/orris-inc/servicedesk/internal/domain/sla"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/mapper"
)

type PolicyCommand struct {
	Actor                authorization.Actor
	Name                 string
	Priority             string
	FirstResponseMinutes int
	ResolutionMinutes    int
	Active               *bool
	// Default creates a tenant-less policy; honoured for global admins only.
	Default  bool
	TenantID *uint
}

type PolicyUseCases struct {
	policies sla.PolicyRepository
	logger   logger.Interface
}

func NewPolicyUseCases(policies sla.PolicyRepository, logger logger.Interface) *PolicyUseCases {
	return &PolicyUseCases{policies: policies, logger: logger}
}

// List returns the actor's tenant policies followed by the defaults.
func (uc *PolicyUseCases) List(ctx context.Context, actor authorization.Actor, tenantID *uint) ([]*dto.PolicyDTO, error) {
	scope := actor.TenantFilter()
	if actor.IsGlobalAdmin() {
		scope = tenantID
	}
	policies, err := uc.policies.List(ctx, scope)
	if err != nil {
		uc.logger.Errorw("failed to list SLA policies", "error", err)
		return nil, errors.NewInternalError("failed to list SLA policies")
	}
	return mapper.MapSlice(policies, dto.ToPolicyDTO), nil
}

func (uc *PolicyUseCases) Create(ctx context.Context, cmd PolicyCommand) (*dto.PolicyDTO, error) {
	tenantID := cmd.Actor.TenantID
	if cmd.Actor.IsGlobalAdmin() {
		tenantID = cmd.TenantID
		if cmd.Default {
			tenantID = nil
		}
	}

	p, err := sla.NewPolicy(tenantID, cmd.Name, vo.Priority(cmd.Priority), cmd.FirstResponseMinutes, cmd.ResolutionMinutes)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Active != nil {
		p.SetActive(*cmd.Active)
	}
	if err := uc.policies.Create(ctx, p); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("a policy for this priority already exists")
		}
		uc.logger.Errorw("failed to create SLA policy", "error", err)
		return nil, errors.NewInternalError("failed to create SLA policy")
	}

	uc.logger.Infow("SLA policy created", "policy_id", p.ID(), "priority", p.Priority(), "actor_id", cmd.Actor.UserID)
	return dto.ToPolicyDTO(p), nil
}

func (uc *PolicyUseCases) Update(ctx context.Context, id uint, cmd PolicyCommand) (*dto.PolicyDTO, error) {
	p, err := uc.load(ctx, cmd.Actor, id)
	if err != nil {
		return nil, err
	}
	if err := p.Update(cmd.Name, vo.Priority(cmd.Priority), cmd.FirstResponseMinutes, cmd.ResolutionMinutes); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Active != nil {
		p.SetActive(*cmd.Active)
	}
	if err := uc.policies.Update(ctx, p); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("a policy for this priority already exists")
		}
		uc.logger.Errorw("failed to update SLA policy", "policy_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update SLA policy")
	}

	uc.logger.Infow("SLA policy updated", "policy_id", id, "actor_id", cmd.Actor.UserID)
	return dto.ToPolicyDTO(p), nil
}

func (uc *PolicyUseCases) Delete(ctx context.Context, actor authorization.Actor, id uint) error {
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	if err := uc.policies.Delete(ctx, id); err != nil {
		uc.logger.Errorw("failed to delete SLA policy", "policy_id", id, "error", err)
		return errors.NewInternalError("failed to delete SLA policy")
	}
	uc.logger.Infow("SLA policy deleted", "policy_id", id, "actor_id", actor.UserID)
	return nil
}

// load only lets global admins change default policies.
func (uc *PolicyUseCases) load(ctx context.Context, actor authorization.Actor, id uint) (*sla.Policy, error) {
	p, err := uc.policies.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get SLA policy", "policy_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get SLA policy")
	}
	if p == nil || !actor.CanAccessTenant(p.TenantID()) {
		return nil, errors.NewNotFoundError("SLA policy not found")
	}
	if p.TenantID() == nil && !actor.IsGlobalAdmin() {
		return nil, errors.NewForbiddenError("default SLA policies can only be changed by a global admin")
	}
	return p, nil
}
