package models

import (
	"time"

	"github.com/orris-inc/servicedesk/internal/shared/constants"
)

type SLAPolicyModel struct {
	ID                   uint   `gorm:"primarykey"`
	TenantID             *uint  `gorm:"uniqueIndex:idx_sla_tenant_priority"`
	Name                 string `gorm:"not null;size:100"`
	Priority             string `gorm:"not null;size:20;uniqueIndex:idx_sla_tenant_priority"`
	FirstResponseMinutes int    `gorm:"not null"`
	ResolutionMinutes    int    `gorm:"not null"`
	Active               bool   `gorm:"not null"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (SLAPolicyModel) TableName() string {
	return constants.TableSLAPolicies
}

type SLATrackingModel struct {
	ID                    uint  `gorm:"primarykey"`
	TicketID              uint  `gorm:"uniqueIndex;not null"`
	PolicyID              *uint `gorm:"index"`
	FirstResponseTarget   time.Time
	FirstResponseAt       *time.Time
	FirstResponseBreached bool `gorm:"not null;default:false;index"`
	ResolutionTarget      time.Time
	ResolvedAt            *time.Time
	ResolutionBreached    bool `gorm:"not null;default:false;index"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (SLATrackingModel) TableName() string {
	return constants.TableSLATrackings
}
