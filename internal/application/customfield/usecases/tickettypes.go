package usecases

import (
	"context"
	"strings"

	"github.com/orris-inc/servicedesk/internal/application/customfield/dto"
	"github.com/orris-inc/servicedesk/internal/domain/customfield"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/mapper"
)

type TicketTypeCommand struct {
	Actor           authorization.Actor
	Name            string
	Description     string
	DefaultPriority string
	Active          *bool
	// Global creates a type shared by all tenants; global admins only.
	Global bool
}

type TicketTypeUseCases struct {
	typeRepo customfield.TicketTypeRepository
	logger   logger.Interface
}

func NewTicketTypeUseCases(typeRepo customfield.TicketTypeRepository, logger logger.Interface) *TicketTypeUseCases {
	return &TicketTypeUseCases{typeRepo: typeRepo, logger: logger}
}

// List returns the tenant's types plus global ones. Staff may include inactive types.
func (uc *TicketTypeUseCases) List(ctx context.Context, actor authorization.Actor, includeInactive bool) ([]*dto.TicketTypeDTO, error) {
	types, err := uc.typeRepo.List(ctx, actor.TenantFilter(), !(includeInactive && actor.IsStaff()))
	if err != nil {
		uc.logger.Errorw("failed to list ticket types", "error", err)
		return nil, errors.NewInternalError("failed to list ticket types")
	}
	return mapper.MapSlice(types, dto.ToTicketTypeDTO), nil
}

func (uc *TicketTypeUseCases) Create(ctx context.Context, cmd TicketTypeCommand) (*dto.TicketTypeDTO, error) {
	tenantID := cmd.Actor.TenantID
	if cmd.Global {
		if !cmd.Actor.IsGlobalAdmin() {
			return nil, errors.NewForbiddenError("only global admins can create global ticket types")
		}
		tenantID = nil
	}

	tt, err := customfield.NewTicketType(tenantID, cmd.Name, cmd.Description, parsePriority(cmd.DefaultPriority))
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.typeRepo.Create(ctx, tt); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("ticket type name already exists")
		}
		uc.logger.Errorw("failed to create ticket type", "name", cmd.Name, "error", err)
		return nil, errors.NewInternalError("failed to create ticket type")
	}
	uc.logger.Infow("ticket type created", "ticket_type_id", tt.ID(), "name", tt.Name())
	return dto.ToTicketTypeDTO(tt), nil
}

func (uc *TicketTypeUseCases) Update(ctx context.Context, id uint, cmd TicketTypeCommand) (*dto.TicketTypeDTO, error) {
	tt, err := loadManagedType(ctx, uc.typeRepo, uc.logger, cmd.Actor, id)
	if err != nil {
		return nil, err
	}
	if err := tt.Update(cmd.Name, cmd.Description, parsePriority(cmd.DefaultPriority)); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Active != nil {
		tt.SetActive(*cmd.Active)
	}
	if err := uc.typeRepo.Update(ctx, tt); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("ticket type name already exists")
		}
		uc.logger.Errorw("failed to update ticket type", "ticket_type_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update ticket type")
	}
	uc.logger.Infow("ticket type updated", "ticket_type_id", id)
	return dto.ToTicketTypeDTO(tt), nil
}

func (uc *TicketTypeUseCases) Delete(ctx context.Context, actor authorization.Actor, id uint) error {
	tt, err := loadManagedType(ctx, uc.typeRepo, uc.logger, actor, id)
	if err != nil {
		return err
	}
	if err := uc.typeRepo.Delete(ctx, tt.ID()); err != nil {
		uc.logger.Errorw("failed to delete ticket type", "ticket_type_id", id, "error", err)
		return errors.NewInternalError("failed to delete ticket type")
	}
	uc.logger.Infow("ticket type deleted", "ticket_type_id", id)
	return nil
}

// loadManagedType returns a type the actor may modify. Global types belong to
// global admins.
func loadManagedType(ctx context.Context, repo customfield.TicketTypeRepository, log logger.Interface, actor authorization.Actor, id uint) (*customfield.TicketType, error) {
	tt, err := repo.GetByID(ctx, id)
	if err != nil {
		log.Errorw("failed to get ticket type", "ticket_type_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get ticket type")
	}
	if tt == nil || (tt.TenantID() != nil && !actor.CanAccessTenant(tt.TenantID())) {
		return nil, errors.NewNotFoundError("ticket type not found")
	}
	if tt.TenantID() == nil && !actor.IsGlobalAdmin() {
		return nil, errors.NewForbiddenError("global ticket types can only be changed by global admins")
	}
	return tt, nil
}

func parsePriority(s string) vo.Priority {
	return vo.Priority(strings.ToUpper(strings.TrimSpace(s)))
}
