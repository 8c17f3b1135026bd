package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/orris-inc/servicedesk/internal/shared/constants"
)

type ArticleModel struct {
	ID              uint   `gorm:"primarykey"`
	TenantID        *uint  `gorm:"index"`
	Title           string `gorm:"not null;size:200"`
	Slug            string `gorm:"uniqueIndex;not null;size:220"`
	Content         string `gorm:"type:text;not null"`
	Category        string `gorm:"size:50;index"`
	Tags            datatypes.JSON
	Status          string `gorm:"not null;size:20;index"`
	AuthorID        uint   `gorm:"not null"`
	ViewCount       int64  `gorm:"not null;default:0"`
	HelpfulCount    int64  `gorm:"not null;default:0"`
	NotHelpfulCount int64  `gorm:"not null;default:0"`
	PublishedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (ArticleModel) TableName() string {
	return constants.TableArticles
}
