package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/servicedesk/internal/domain/tenant"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/servicedesk/internal/shared/db"
)

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(gdb *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: gdb}
}

func (r *OrganizationRepository) Create(ctx context.Context, o *tenant.Organization) error {
	model := mappers.OrganizationToModel(o)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}
	o.SetID(model.ID)
	return nil
}

func (r *OrganizationRepository) Update(ctx context.Context, o *tenant.Organization) error {
	model := mappers.OrganizationToModel(o)
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.OrganizationModel{}).
		Where("id = ?", model.ID).
		Select("name", "description", "active", "updated_at").
		Updates(model).Error; err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.OrganizationModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id uint) (*tenant.Organization, error) {
	var model models.OrganizationModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return mappers.OrganizationToDomain(&model), nil
}

func (r *OrganizationRepository) List(ctx context.Context, page, pageSize int) ([]*tenant.Organization, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.OrganizationModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count organizations: %w", err)
	}
	var list []models.OrganizationModel
	if err := query.Order("name ASC").Scopes(db.Paginate(page, pageSize)).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list organizations: %w", err)
	}
	out := make([]*tenant.Organization, 0, len(list))
	for i := range list {
		out = append(out, mappers.OrganizationToDomain(&list[i]))
	}
	return out, total, nil
}

func (r *OrganizationRepository) CountTenants(ctx context.Context, organizationID uint) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.TenantModel{}).
		Where("organization_id = ?", organizationID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tenants: %w", err)
	}
	return count, nil
}

type TenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(gdb *gorm.DB) *TenantRepository {
	return &TenantRepository{db: gdb}
}

func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	model := mappers.TenantToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	t.SetID(model.ID)
	return nil
}

func (r *TenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	model := mappers.TenantToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.TenantModel{}).
		Where("id = ?", model.ID).
		Select("name", "active", "updated_at").
		Updates(model).Error; err != nil {
		return fmt.Errorf("failed to update tenant: %w", err)
	}
	return nil
}

func (r *TenantRepository) GetByID(ctx context.Context, id uint) (*tenant.Tenant, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *TenantRepository) GetByCode(ctx context.Context, code string) (*tenant.Tenant, error) {
	return r.first(ctx, "code = ?", code)
}

func (r *TenantRepository) first(ctx context.Context, where string, arg any) (*tenant.Tenant, error) {
	var model models.TenantModel
	if err := db.GetTxFromContext(ctx, r.db).Where(where, arg).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return mappers.TenantToDomain(&model), nil
}

func (r *TenantRepository) List(ctx context.Context, filter tenant.Filter) ([]*tenant.Tenant, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.TenantModel{}).
		Scopes(db.TenantScope("id", filter.ID))
	if filter.OrganizationID != nil {
		query = query.Where("organization_id = ?", *filter.OrganizationID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	query = query.Scopes(db.Search(filter.Search, "code", "name"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tenants: %w", err)
	}
	var list []models.TenantModel
	if err := query.Order("code ASC").Scopes(db.Paginate(filter.Page, filter.PageSize)).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tenants: %w", err)
	}
	out := make([]*tenant.Tenant, 0, len(list))
	for i := range list {
		out = append(out, mappers.TenantToDomain(&list[i]))
	}
	return out, total, nil
}
