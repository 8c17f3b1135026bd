package mappers

import (
	"github.com/orris-inc/servicedesk/internal/domain/asset"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/models"
)

func AssetToModel(a *asset.Asset) *models.AssetModel {
	d := a.Details()
	return &models.AssetModel{
		ID:                a.ID(),
		TenantID:          a.TenantID(),
		AssetTag:          a.AssetTag(),
		Name:              a.Name(),
		AssetType:         string(a.Type()),
		Status:            string(a.Status()),
		SerialNumber:      d.SerialNumber,
		Manufacturer:      d.Manufacturer,
		Model:             d.Model,
		Location:          d.Location,
		Notes:             d.Notes,
		AssigneeID:        a.AssigneeID(),
		PurchaseDate:      a.PurchaseDate(),
		WarrantyExpiresAt: a.WarrantyExpiresAt(),
		CreatedAt:         a.CreatedAt(),
		UpdatedAt:         a.UpdatedAt(),
	}
}

func AssetToDomain(m *models.AssetModel) *asset.Asset {
	return asset.ReconstructAsset(
		m.ID,
		m.TenantID,
		m.AssetTag,
		m.Name,
		asset.Type(m.AssetType),
		asset.Status(m.Status),
		asset.Details{
			SerialNumber: m.SerialNumber,
			Manufacturer: m.Manufacturer,
			Model:        m.Model,
			Location:     m.Location,
			Notes:        m.Notes,
		},
		m.AssigneeID,
		utcPtr(m.PurchaseDate),
		utcPtr(m.WarrantyExpiresAt),
		m.CreatedAt.UTC(),
		m.UpdatedAt.UTC(),
	)
}
