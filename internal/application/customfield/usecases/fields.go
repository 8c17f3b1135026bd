package usecases

import (
	"context"
	"strings"

	"github.com/orris-inc/servicedesk/internal/application/customfield/dto"
	"github.com/orris-inc/servicedesk/internal/domain/customfield"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/mapper"
)

type FieldCommand struct {
	Actor        authorization.Actor
	TicketTypeID *uint
	Key          string
	Label        string
	FieldType    string
	Options      []string
	Required     bool
	SortOrder    int
	Active       *bool
}

type FieldUseCases struct {
	fieldRepo customfield.FieldRepository
	typeRepo  customfield.TicketTypeRepository
	logger    logger.Interface
}

func NewFieldUseCases(fieldRepo customfield.FieldRepository, typeRepo customfield.TicketTypeRepository, logger logger.Interface) *FieldUseCases {
	return &FieldUseCases{fieldRepo: fieldRepo, typeRepo: typeRepo, logger: logger}
}

// List returns the fields that apply to ticketTypeID, including the ones
// shared by every type. A nil ticketTypeID lists only shared fields.
func (uc *FieldUseCases) List(ctx context.Context, actor authorization.Actor, ticketTypeID *uint) ([]*dto.CustomFieldDTO, error) {
	if ticketTypeID != nil {
		tt, err := uc.typeRepo.GetByID(ctx, *ticketTypeID)
		if err != nil {
			uc.logger.Errorw("failed to get ticket type", "ticket_type_id", *ticketTypeID, "error", err)
			return nil, errors.NewInternalError("failed to list custom fields")
		}
		if tt == nil || (tt.TenantID() != nil && !actor.CanAccessTenant(tt.TenantID())) {
			return nil, errors.NewNotFoundError("ticket type not found")
		}
	}
	fields, err := uc.fieldRepo.ListForType(ctx, ticketTypeID, !actor.IsStaff())
	if err != nil {
		uc.logger.Errorw("failed to list custom fields", "error", err)
		return nil, errors.NewInternalError("failed to list custom fields")
	}
	return mapper.MapSlice(fields, dto.ToCustomFieldDTO), nil
}

func (uc *FieldUseCases) Create(ctx context.Context, cmd FieldCommand) (*dto.CustomFieldDTO, error) {
	if err := uc.checkScope(ctx, cmd.Actor, cmd.TicketTypeID); err != nil {
		return nil, err
	}

	f, err := customfield.NewCustomField(cmd.TicketTypeID, cmd.Key, cmd.Label,
		customfield.FieldType(strings.ToUpper(cmd.FieldType)), cmd.Options, cmd.Required, cmd.SortOrder)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	exists, err := uc.fieldRepo.KeyExists(ctx, cmd.TicketTypeID, f.Key())
	if err != nil {
		uc.logger.Errorw("failed to check custom field key", "key", f.Key(), "error", err)
		return nil, errors.NewInternalError("failed to create custom field")
	}
	if exists {
		return nil, errors.NewConflictError("custom field key already exists")
	}

	if err := uc.fieldRepo.Create(ctx, f); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("custom field key already exists")
		}
		uc.logger.Errorw("failed to create custom field", "key", f.Key(), "error", err)
		return nil, errors.NewInternalError("failed to create custom field")
	}
	uc.logger.Infow("custom field created", "field_id", f.ID(), "key", f.Key(), "type", f.FieldType())
	return dto.ToCustomFieldDTO(f), nil
}

// Update changes presentation and validation attributes. Key and type are fixed
// once values may exist on tickets.
func (uc *FieldUseCases) Update(ctx context.Context, id uint, cmd FieldCommand) (*dto.CustomFieldDTO, error) {
	f, err := uc.load(ctx, cmd.Actor, id)
	if err != nil {
		return nil, err
	}
	if err := f.Update(cmd.Label, cmd.Options, cmd.Required, cmd.SortOrder); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Active != nil {
		f.SetActive(*cmd.Active)
	}
	if err := uc.fieldRepo.Update(ctx, f); err != nil {
		uc.logger.Errorw("failed to update custom field", "field_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update custom field")
	}
	uc.logger.Infow("custom field updated", "field_id", id)
	return dto.ToCustomFieldDTO(f), nil
}

func (uc *FieldUseCases) Delete(ctx context.Context, actor authorization.Actor, id uint) error {
	f, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := uc.fieldRepo.Delete(ctx, f.ID()); err != nil {
		uc.logger.Errorw("failed to delete custom field", "field_id", id, "error", err)
		return errors.NewInternalError("failed to delete custom field")
	}
	uc.logger.Infow("custom field deleted", "field_id", id)
	return nil
}

func (uc *FieldUseCases) load(ctx context.Context, actor authorization.Actor, id uint) (*customfield.CustomField, error) {
	f, err := uc.fieldRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get custom field", "field_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get custom field")
	}
	if f == nil {
		return nil, errors.NewNotFoundError("custom field not found")
	}
	if err := uc.checkScope(ctx, actor, f.TicketTypeID()); err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("custom field not found")
		}
		return nil, err
	}
	return f, nil
}

// checkScope allows changes to fields of a type the actor manages. Fields
// shared by every type are global.
func (uc *FieldUseCases) checkScope(ctx context.Context, actor authorization.Actor, ticketTypeID *uint) error {
	if ticketTypeID == nil {
		if !actor.IsGlobalAdmin() {
			return errors.NewForbiddenError("fields shared by all ticket types can only be changed by global admins")
		}
		return nil
	}
	_, err := loadManagedType(ctx, uc.typeRepo, uc.logger, actor, *ticketTypeID)
	return err
}
