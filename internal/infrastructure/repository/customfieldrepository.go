package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/servicedesk/internal/domain/customfield"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/servicedesk/internal/shared/db"
)

type TicketTypeRepository struct {
	db *gorm.DB
}

func NewTicketTypeRepository(gdb *gorm.DB) *TicketTypeRepository {
	return &TicketTypeRepository{db: gdb}
}

func (r *TicketTypeRepository) Create(ctx context.Context, t *customfield.TicketType) error {
	model := mappers.TicketTypeToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket type: %w", err)
	}
	t.SetID(model.ID)
	return nil
}

func (r *TicketTypeRepository) Update(ctx context.Context, t *customfield.TicketType) error {
	model := mappers.TicketTypeToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.TicketTypeModel{}).
		Where("id = ?", model.ID).
		Select("name", "description", "default_priority", "active", "updated_at").
		Updates(model).Error; err != nil {
		return fmt.Errorf("failed to update ticket type: %w", err)
	}
	return nil
}

func (r *TicketTypeRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.TicketTypeModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete ticket type: %w", err)
	}
	return nil
}

func (r *TicketTypeRepository) GetByID(ctx context.Context, id uint) (*customfield.TicketType, error) {
	var model models.TicketTypeModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket type: %w", err)
	}
	return mappers.TicketTypeToDomain(&model), nil
}

func (r *TicketTypeRepository) List(ctx context.Context, tenantID *uint, activeOnly bool) ([]*customfield.TicketType, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.TicketTypeModel{})
	if tenantID != nil {
		query = query.Where("(tenant_id = ? OR tenant_id IS NULL)", *tenantID)
	}
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var list []models.TicketTypeModel
	if err := query.Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list ticket types: %w", err)
	}
	out := make([]*customfield.TicketType, 0, len(list))
	for i := range list {
		out = append(out, mappers.TicketTypeToDomain(&list[i]))
	}
	return out, nil
}

type CustomFieldRepository struct {
	db *gorm.DB
}

func NewCustomFieldRepository(gdb *gorm.DB) *CustomFieldRepository {
	return &CustomFieldRepository{db: gdb}
}

func (r *CustomFieldRepository) Create(ctx context.Context, f *customfield.CustomField) error {
	model := mappers.CustomFieldToModel(f)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create custom field: %w", err)
	}
	f.SetID(model.ID)
	return nil
}

func (r *CustomFieldRepository) Update(ctx context.Context, f *customfield.CustomField) error {
	model := mappers.CustomFieldToModel(f)
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.CustomFieldModel{}).
		Where("id = ?", model.ID).
		Select("label", "options", "required", "active", "sort_order", "updated_at").
		Updates(model).Error; err != nil {
		return fmt.Errorf("failed to update custom field: %w", err)
	}
	return nil
}

func (r *CustomFieldRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.CustomFieldModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete custom field: %w", err)
	}
	return nil
}

func (r *CustomFieldRepository) GetByID(ctx context.Context, id uint) (*customfield.CustomField, error) {
	var model models.CustomFieldModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get custom field: %w", err)
	}
	return mappers.CustomFieldToDomain(&model)
}

func (r *CustomFieldRepository) ListForType(ctx context.Context, ticketTypeID *uint, activeOnly bool) ([]*customfield.CustomField, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.CustomFieldModel{})
	if ticketTypeID != nil {
		query = query.Where("(ticket_type_id = ? OR ticket_type_id IS NULL)", *ticketTypeID)
	} else {
		query = query.Where("ticket_type_id IS NULL")
	}
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var list []models.CustomFieldModel
	if err := query.Order("sort_order ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list custom fields: %w", err)
	}
	out := make([]*customfield.CustomField, 0, len(list))
	for i := range list {
		f, err := mappers.CustomFieldToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *CustomFieldRepository) KeyExists(ctx context.Context, ticketTypeID *uint, key string) (bool, error) {
	where, args := nullableEq("ticket_type_id", ticketTypeID)
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.CustomFieldModel{}).
		Where(where, args...).
		Where("field_key = ?", key).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check custom field key: %w", err)
	}
	return count > 0, nil
}
