package mappers

import (
	"github.com/orris-inc/servicedesk/internal/domain/knowledge"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/models"
)

func ArticleToModel(a *knowledge.Article) *models.ArticleModel {
	return &models.ArticleModel{
		ID:              a.ID(),
		TenantID:        a.TenantID(),
		Title:           a.Title(),
		Slug:            a.Slug(),
		Content:         a.Content(),
		Category:        a.Category(),
		Tags:            marshalJSON(a.Tags()),
		Status:          string(a.Status()),
		AuthorID:        a.AuthorID(),
		ViewCount:       a.ViewCount(),
		HelpfulCount:    a.HelpfulCount(),
		NotHelpfulCount: a.NotHelpfulCount(),
		PublishedAt:     a.PublishedAt(),
		CreatedAt:       a.CreatedAt(),
		UpdatedAt:       a.UpdatedAt(),
	}
}

func ArticleToDomain(m *models.ArticleModel) (*knowledge.Article, error) {
	var tags []string
	if err := unmarshalJSON(m.Tags, &tags, "article tags", m.ID); err != nil {
		return nil, err
	}
	return knowledge.ReconstructArticle(
		m.ID,
		m.TenantID,
		m.Title, m.Slug, m.Content, m.Category,
		tags,
		knowledge.Status(m.Status),
		m.AuthorID,
		knowledge.ArticleCounters{Views: m.ViewCount, Helpful: m.HelpfulCount, NotHelpful: m.NotHelpfulCount},
		utcPtr(m.PublishedAt),
		m.CreatedAt.UTC(),
		m.UpdatedAt.UTC(),
	), nil
}
