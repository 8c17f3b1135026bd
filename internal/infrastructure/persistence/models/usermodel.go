package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/servicedesk/internal/shared/constants"
)

// UserModel is the persistence shape of a user. Roles live in user_roles.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	TenantID     *uint  `gorm:"index"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	Name         string `gorm:"not null;size:100"`
	PasswordHash string `gorm:"not null;size:255"`
	Active       bool   `gorm:"not null;index"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	Roles []RoleAssignmentModel `gorm:"foreignKey:UserID"`
}

func (UserModel) TableName() string {
	return constants.TableUsers
}

type RoleAssignmentModel struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_user_role"`
	Role      string `gorm:"not null;size:20;uniqueIndex:idx_user_role;index"`
	CreatedAt time.Time
}

func (RoleAssignmentModel) TableName() string {
	return constants.TableUserRoles
}
