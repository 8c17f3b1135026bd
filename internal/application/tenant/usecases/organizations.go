package usecases

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/application/tenant/dto"
	"github.com/orris-inc/servicedesk/internal/domain/tenant"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/mapper"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

type OrganizationCommand struct {
	Name        string
	Description string
	Active      *bool
}

// OrganizationUseCases groups the organization operations, all of which are
// restricted to global admins at the route level.
type OrganizationUseCases struct {
	orgRepo tenant.OrganizationRepository
	logger  logger.Interface
}

func NewOrganizationUseCases(orgRepo tenant.OrganizationRepository, logger logger.Interface) *OrganizationUseCases {
	return &OrganizationUseCases{orgRepo: orgRepo, logger: logger}
}

func (uc *OrganizationUseCases) Create(ctx context.Context, cmd OrganizationCommand) (*dto.OrganizationDTO, error) {
	org, err := tenant.NewOrganization(cmd.Name, cmd.Description)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.orgRepo.Create(ctx, org); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("organization name already exists")
		}
		uc.logger.Errorw("failed to create organization", "error", err)
		return nil, errors.NewInternalError("failed to create organization")
	}
	uc.logger.Infow("organization created", "organization_id", org.ID())
	return dto.ToOrganizationDTO(org), nil
}

func (uc *OrganizationUseCases) List(ctx context.Context, page, pageSize int) ([]*dto.OrganizationDTO, int64, error) {
	p := utils.ValidatePagination(page, pageSize)
	orgs, total, err := uc.orgRepo.List(ctx, p.Page, p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list organizations", "error", err)
		return nil, 0, errors.NewInternalError("failed to list organizations")
	}
	return mapper.MapSlice(orgs, dto.ToOrganizationDTO), total, nil
}

func (uc *OrganizationUseCases) Get(ctx context.Context, id uint) (*dto.OrganizationDTO, error) {
	org, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToOrganizationDTO(org), nil
}

func (uc *OrganizationUseCases) Update(ctx context.Context, id uint, cmd OrganizationCommand) (*dto.OrganizationDTO, error) {
	org, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := org.Update(cmd.Name, cmd.Description); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Active != nil {
		org.SetActive(*cmd.Active)
	}
	if err := uc.orgRepo.Update(ctx, org); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("organization name already exists")
		}
		uc.logger.Errorw("failed to update organization", "organization_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update organization")
	}
	uc.logger.Infow("organization updated", "organization_id", id)
	return dto.ToOrganizationDTO(org), nil
}

// Delete refuses organizations that still own tenants.
func (uc *OrganizationUseCases) Delete(ctx context.Context, id uint) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	count, err := uc.orgRepo.CountTenants(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to count tenants", "organization_id", id, "error", err)
		return errors.NewInternalError("failed to delete organization")
	}
	if count > 0 {
		return errors.NewConflictError("organization still has tenants")
	}
	if err := uc.orgRepo.Delete(ctx, id); err != nil {
		uc.logger.Errorw("failed to delete organization", "organization_id", id, "error", err)
		return errors.NewInternalError("failed to delete organization")
	}
	uc.logger.Infow("organization deleted", "organization_id", id)
	return nil
}

func (uc *OrganizationUseCases) load(ctx context.Context, id uint) (*tenant.Organization, error) {
	org, err := uc.orgRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get organization", "organization_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get organization")
	}
	if org == nil {
		return nil, errors.NewNotFoundError("organization not found")
	}
	return org, nil
}
