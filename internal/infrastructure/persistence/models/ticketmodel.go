package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/orris-inc/servicedesk/internal/shared/constants"
)

type TicketModel struct {
	ID           uint   `gorm:"primarykey"`
	Number       string `gorm:"uniqueIndex;size:50;not null"`
	TenantID     *uint  `gorm:"index"`
	Subject      string `gorm:"size:200;not null"`
	Description  string `gorm:"type:text;not null"`
	Category     string `gorm:"size:50;not null;index"`
	Priority     string `gorm:"size:20;not null;index"`
	Status       string `gorm:"size:20;not null;index"`
	TicketTypeID *uint  `gorm:"index"`
	RequesterID  uint   `gorm:"not null;index"`
	AssigneeID   *uint  `gorm:"index"`
	AssetID      *uint  `gorm:"index"`
	Tags         datatypes.JSON
	CustomFields datatypes.JSON
	ResolvedAt   *time.Time
	ClosedAt     *time.Time
	Version      int       `gorm:"not null;default:1"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	// No foreign key constraints; relationships are enforced by the application.
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

type CommentModel struct {
	ID        uint      `gorm:"primarykey"`
	TicketID  uint      `gorm:"not null;index"`
	AuthorID  uint      `gorm:"not null;index"`
	Body      string    `gorm:"type:text;not null"`
	Internal  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (CommentModel) TableName() string {
	return constants.TableTicketComments
}

type HistoryModel struct {
	ID        uint   `gorm:"primarykey"`
	TicketID  uint   `gorm:"not null;index"`
	ActorID   uint   `gorm:"not null"`
	Field     string `gorm:"size:50;not null"`
	OldValue  string `gorm:"type:text"`
	NewValue  string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (HistoryModel) TableName() string {
	return constants.TableTicketHistory
}
