package usecases

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/application/tenant/dto"
	"github.com/orris-inc/servicedesk/internal/domain/tenant"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/mapper"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

type CreateTenantCommand struct {
	OrganizationID uint
	Code           string
	Name           string
}

type ListTenantsQuery struct {
	Actor          authorization.Actor
	OrganizationID *uint
	Active         *bool
	Search         string
	Page           int
	PageSize       int
}

type TenantUseCases struct {
	tenantRepo tenant.Repository
	orgRepo    tenant.OrganizationRepository
	logger     logger.Interface
}

func NewTenantUseCases(tenantRepo tenant.Repository, orgRepo tenant.OrganizationRepository, logger logger.Interface) *TenantUseCases {
	return &TenantUseCases{tenantRepo: tenantRepo, orgRepo: orgRepo, logger: logger}
}

func (uc *TenantUseCases) Create(ctx context.Context, cmd CreateTenantCommand) (*dto.TenantDTO, error) {
	org, err := uc.orgRepo.GetByID(ctx, cmd.OrganizationID)
	if err != nil {
		uc.logger.Errorw("failed to get organization", "organization_id", cmd.OrganizationID, "error", err)
		return nil, errors.NewInternalError("failed to create tenant")
	}
	if org == nil {
		return nil, errors.NewNotFoundError("organization not found")
	}

	t, err := tenant.NewTenant(cmd.OrganizationID, cmd.Code, cmd.Name)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	existing, err := uc.tenantRepo.GetByCode(ctx, t.Code())
	if err != nil {
		uc.logger.Errorw("failed to check tenant code", "code", t.Code(), "error", err)
		return nil, errors.NewInternalError("failed to create tenant")
	}
	if existing != nil {
		return nil, errors.NewConflictError("tenant code already exists")
	}
	if err := uc.tenantRepo.Create(ctx, t); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("tenant code already exists")
		}
		uc.logger.Errorw("failed to create tenant", "error", err)
		return nil, errors.NewInternalError("failed to create tenant")
	}

	uc.logger.Infow("tenant created", "tenant_id", t.ID(), "code", t.Code())
	return dto.ToTenantDTO(t), nil
}

// List shows a tenant admin only its own tenant.
func (uc *TenantUseCases) List(ctx context.Context, q ListTenantsQuery) ([]*dto.TenantDTO, int64, error) {
	p := utils.ValidatePagination(q.Page, q.PageSize)
	filter := tenant.Filter{
		OrganizationID: q.OrganizationID,
		Active:         q.Active,
		Search:         q.Search,
		Page:           p.Page,
		PageSize:       p.PageSize,
	}
	if !q.Actor.IsGlobalAdmin() {
		filter.ID = q.Actor.TenantFilter()
	}
	tenants, total, err := uc.tenantRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tenants", "error", err)
		return nil, 0, errors.NewInternalError("failed to list tenants")
	}
	return mapper.MapSlice(tenants, dto.ToTenantDTO), total, nil
}

func (uc *TenantUseCases) Get(ctx context.Context, actor authorization.Actor, id uint) (*dto.TenantDTO, error) {
	t, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return dto.ToTenantDTO(t), nil
}

func (uc *TenantUseCases) Rename(ctx context.Context, actor authorization.Actor, id uint, name string) (*dto.TenantDTO, error) {
	t, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := t.Rename(name); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.tenantRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update tenant", "tenant_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update tenant")
	}
	uc.logger.Infow("tenant renamed", "tenant_id", id, "actor_id", actor.UserID)
	return dto.ToTenantDTO(t), nil
}

// SetActive deactivates or reactivates a tenant. Users of an inactive tenant
// cannot log in.
func (uc *TenantUseCases) SetActive(ctx context.Context, actor authorization.Actor, id uint, active bool) (*dto.TenantDTO, error) {
	t, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if active {
		t.Activate()
	} else {
		t.Deactivate()
	}
	if err := uc.tenantRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update tenant", "tenant_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update tenant")
	}
	uc.logger.Infow("tenant activation changed", "tenant_id", id, "active", active)
	return dto.ToTenantDTO(t), nil
}

func (uc *TenantUseCases) load(ctx context.Context, actor authorization.Actor, id uint) (*tenant.Tenant, error) {
	if !actor.IsGlobalAdmin() && (actor.TenantID == nil || *actor.TenantID != id) {
		return nil, errors.NewNotFoundError("tenant not found")
	}
	t, err := uc.tenantRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get tenant", "tenant_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get tenant")
	}
	if t == nil {
		return nil, errors.NewNotFoundError("tenant not found")
	}
	return t, nil
}
