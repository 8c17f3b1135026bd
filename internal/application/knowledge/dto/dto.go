package dto

import (
	"time"

	"github.com/orris-inc/servicedesk/internal/domain/knowledge"
)

type ArticleDTO struct {
	ID              uint       `json:"id"`
	TenantID        *uint      `json:"tenant_id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Content         string     `json:"content"`
	HTML            string     `json:"html,omitempty"`
	Excerpt         string     `json:"excerpt,omitempty"`
	Category        string     `json:"category"`
	Tags            []string   `json:"tags"`
	Status          string     `json:"status"`
	AuthorID        uint       `json:"author_id"`
	ViewCount       int64      `json:"view_count"`
	HelpfulCount    int64      `json:"helpful_count"`
	NotHelpfulCount int64      `json:"not_helpful_count"`
	HelpfulRatio    float64    `json:"helpful_ratio"`
	PublishedAt     *time.Time `json:"published_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func ToArticleDTO(a *knowledge.Article) *ArticleDTO {
	return &ArticleDTO{
		ID:              a.ID(),
		TenantID:        a.TenantID(),
		Title:           a.Title(),
		Slug:            a.Slug(),
		Content:         a.Content(),
		Category:        a.Category(),
		Tags:            a.Tags(),
		Status:          string(a.Status()),
		AuthorID:        a.AuthorID(),
		ViewCount:       a.ViewCount(),
		HelpfulCount:    a.HelpfulCount(),
		NotHelpfulCount: a.NotHelpfulCount(),
		HelpfulRatio:    a.HelpfulRatio(),
		PublishedAt:     a.PublishedAt(),
		CreatedAt:       a.CreatedAt(),
		UpdatedAt:       a.UpdatedAt(),
	}
}
