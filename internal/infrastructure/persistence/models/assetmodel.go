package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/servicedesk/internal/shared/constants"
)

type AssetModel struct {
	ID                uint   `gorm:"primarykey"`
	TenantID          *uint  `gorm:"index"`
	AssetTag          string `gorm:"uniqueIndex;not null;size:50"`
	Name              string `gorm:"not null;size:200"`
	AssetType         string `gorm:"not null;size:20;index"`
	Status            string `gorm:"not null;size:20;index"`
	SerialNumber      string `gorm:"size:100"`
	Manufacturer      string `gorm:"size:100"`
	Model             string `gorm:"size:100"`
	Location          string `gorm:"size:200"`
	Notes             string `gorm:"type:text"`
	AssigneeID        *uint  `gorm:"index"`
	PurchaseDate      *time.Time
	WarrantyExpiresAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (AssetModel) TableName() string {
	return constants.TableAssets
}
