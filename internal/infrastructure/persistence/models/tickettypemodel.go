package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/orris-inc/servicedesk/internal/shared/constants"
)

type TicketTypeModel struct {
	ID              uint   `gorm:"primarykey"`
	TenantID        *uint  `gorm:"index"`
	Name            string `gorm:"not null;size:100"`
	Description     string `gorm:"size:500"`
	DefaultPriority string `gorm:"not null;size:20"`
	Active          bool   `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (TicketTypeModel) TableName() string {
	return constants.TableTicketTypes
}

type CustomFieldModel struct {
	ID           uint   `gorm:"primarykey"`
	TicketTypeID *uint  `gorm:"index"`
	Key          string `gorm:"column:field_key;not null;size:50;index"`
	Label        string `gorm:"not null;size:100"`
	FieldType    string `gorm:"not null;size:20"`
	Options      datatypes.JSON
	Required     bool `gorm:"not null;default:false"`
	Active       bool `gorm:"not null"`
	SortOrder    int  `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (CustomFieldModel) TableName() string {
	return constants.TableCustomFields
}
