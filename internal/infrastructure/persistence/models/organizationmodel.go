package models

import (
	"time"

	"github.com/orris-inc/servicedesk/internal/shared/constants"
)

type OrganizationModel struct {
	ID          uint   `gorm:"primarykey"`
	Name        string `gorm:"uniqueIndex;not null;size:100"`
	Description string `gorm:"size:500"`
	Active      bool   `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (OrganizationModel) TableName() string {
	return constants.TableOrganizations
}

type TenantModel struct {
	ID             uint   `gorm:"primarykey"`
	OrganizationID uint   `gorm:"not null;index"`
	Code           string `gorm:"uniqueIndex;not null;size:50"`
	Name           string `gorm:"not null;size:100"`
	Active         bool   `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (TenantModel) TableName() string {
	return constants.TableTenants
}
