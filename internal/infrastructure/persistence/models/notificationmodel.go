package models

import (
	"time"

	"github.com/orris-inc/servicedesk/internal/shared/constants"
)

type NotificationModel struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"not null;index:idx_notification_user_read"`
	EventType string `gorm:"not null;size:50"`
	Title     string `gorm:"not null;size:200"`
	Message   string `gorm:"type:text"`
	TicketID  *uint  `gorm:"index"`
	Read      bool   `gorm:"column:is_read;not null;default:false;index:idx_notification_user_read"`
	ReadAt    *time.Time
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (NotificationModel) TableName() string {
	return constants.TableNotifications
}

type NotificationPreferenceModel struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_pref_user_event"`
	EventType string `gorm:"not null;size:50;uniqueIndex:idx_pref_user_event"`
	InApp     bool   `gorm:"not null"`
	Email     bool   `gorm:"not null"`
	Realtime  bool   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (NotificationPreferenceModel) TableName() string {
	return constants.TableNotificationPreferences
}
