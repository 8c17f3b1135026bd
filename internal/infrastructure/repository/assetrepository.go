package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/servicedesk/internal/domain/asset"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/servicedesk/internal/shared/db"
)

type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(gdb *gorm.DB) *AssetRepository {
	return &AssetRepository{db: gdb}
}

func (r *AssetRepository) Create(ctx context.Context, a *asset.Asset) error {
	model := mappers.AssetToModel(a)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}
	a.SetID(model.ID)
	return nil
}

func (r *AssetRepository) Update(ctx context.Context, a *asset.Asset) error {
	model := mappers.AssetToModel(a)
	result := db.GetTxFromContext(ctx, r.db).Model(&models.AssetModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "asset_tag", "created_at", "deleted_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update asset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("asset not found")
	}
	return nil
}

func (r *AssetRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.AssetModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

func (r *AssetRepository) GetByID(ctx context.Context, id uint) (*asset.Asset, error) {
	var model models.AssetModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return mappers.AssetToDomain(&model), nil
}

// ExistsByTag includes soft-deleted assets since tags stay reserved.
func (r *AssetRepository) ExistsByTag(ctx context.Context, tag string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Unscoped().Model(&models.AssetModel{}).
		Where("asset_tag = ?", tag).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check asset tag: %w", err)
	}
	return count > 0, nil
}

func (r *AssetRepository) List(ctx context.Context, filter asset.Filter) ([]*asset.Asset, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.AssetModel{}).
		Scopes(db.TenantScope("tenant_id", filter.TenantID))
	if filter.Type != nil {
		query = query.Where("asset_type = ?", string(*filter.Type))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	query = query.Scopes(db.Search(filter.Search, "asset_tag", "name", "serial_number"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assets: %w", err)
	}
	var list []models.AssetModel
	if err := query.Order("asset_tag ASC").Scopes(db.Paginate(filter.Page, filter.PageSize)).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list assets: %w", err)
	}
	out := make([]*asset.Asset, 0, len(list))
	for i := range list {
		out = append(out, mappers.AssetToDomain(&list[i]))
	}
	return out, total, nil
}
