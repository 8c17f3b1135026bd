package dto

import (
	"time"

	"github.com/orris-inc/servicedesk/internal/domain/asset"
)

type AssetDTO struct {
	ID                uint       `json:"id"`
	TenantID          *uint      `json:"tenant_id"`
	AssetTag          string     `json:"asset_tag"`
	Name              string     `json:"name"`
	Type              string     `json:"asset_type"`
	Status            string     `json:"status"`
	SerialNumber      string     `json:"serial_number"`
	Manufacturer      string     `json:"manufacturer"`
	Model             string     `json:"model"`
	Location          string     `json:"location"`
	Notes             string     `json:"notes"`
	AssigneeID        *uint      `json:"assignee_id"`
	PurchaseDate      *time.Time `json:"purchase_date"`
	WarrantyExpiresAt *time.Time `json:"warranty_expires_at"`
	UnderWarranty     bool       `json:"under_warranty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func ToAssetDTO(a *asset.Asset, now time.Time) *AssetDTO {
	d := a.Details()
	return &AssetDTO{
		ID:                a.ID(),
		TenantID:          a.TenantID(),
		AssetTag:          a.AssetTag(),
		Name:              a.Name(),
		Type:              string(a.Type()),
		Status:            string(a.Status()),
		SerialNumber:      d.SerialNumber,
		Manufacturer:      d.Manufacturer,
		Model:             d.Model,
		Location:          d.Location,
		Notes:             d.Notes,
		AssigneeID:        a.AssigneeID(),
		PurchaseDate:      a.PurchaseDate(),
		WarrantyExpiresAt: a.WarrantyExpiresAt(),
		UnderWarranty:     a.IsUnderWarranty(now),
		CreatedAt:         a.CreatedAt(),
		UpdatedAt:         a.UpdatedAt(),
	}
}
