package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/servicedesk/internal/domain/knowledge"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/servicedesk/internal/shared/db"
)

type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(gdb *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: gdb}
}

func (r *ArticleRepository) Create(ctx context.Context, a *knowledge.Article) error {
	model := mappers.ArticleToModel(a)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	a.SetID(model.ID)
	return nil
}

// Update leaves the engagement counters alone; they move through
// IncrementViews and AddVote only.
func (r *ArticleRepository) Update(ctx context.Context, a *knowledge.Article) error {
	model := mappers.ArticleToModel(a)
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.ArticleModel{}).
		Where("id = ?", model.ID).
		Select("title", "slug", "content", "category", "tags", "status", "published_at", "updated_at").
		Updates(model).Error; err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.ArticleModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	return nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id uint) (*knowledge.Article, error) {
	var model models.ArticleModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return mappers.ArticleToDomain(&model)
}

func (r *ArticleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Unscoped().Model(&models.ArticleModel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check article slug: %w", err)
	}
	return count > 0, nil
}

func (r *ArticleRepository) List(ctx context.Context, filter knowledge.Filter) ([]*knowledge.Article, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ArticleModel{})
	if filter.TenantID != nil {
		query = query.Where("(tenant_id = ? OR tenant_id IS NULL)", *filter.TenantID)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	query = query.Scopes(db.Search(filter.Search, "title", "content"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}
	var list []models.ArticleModel
	if err := query.Order("updated_at DESC, id DESC").Scopes(db.Paginate(filter.Page, filter.PageSize)).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	out, err := r.toDomainList(list)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ArticleRepository) GetByIDs(ctx context.Context, ids []uint) ([]*knowledge.Article, error) {
	if len(ids) == 0 {
		return []*knowledge.Article{}, nil
	}
	var list []models.ArticleModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get articles by ids: %w", err)
	}
	byID := make(map[uint]*models.ArticleModel, len(list))
	for i := range list {
		byID[list[i].ID] = &list[i]
	}

	out := make([]*knowledge.Article, 0, len(ids))
	for _, id := range ids {
		m, ok := byID[id]
		if !ok {
			continue
		}
		a, err := mappers.ArticleToDomain(m)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *ArticleRepository) IncrementViews(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.ArticleModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
		return fmt.Errorf("failed to increment article views: %w", err)
	}
	return nil
}

func (r *ArticleRepository) AddVote(ctx context.Context, id uint, helpful bool) error {
	column := "not_helpful_count"
	if helpful {
		column = "helpful_count"
	}
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.ArticleModel{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error; err != nil {
		return fmt.Errorf("failed to record article vote: %w", err)
	}
	return nil
}

func (r *ArticleRepository) toDomainList(list []models.ArticleModel) ([]*knowledge.Article, error) {
	out := make([]*knowledge.Article, 0, len(list))
	for i := range list {
		a, err := mappers.ArticleToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
