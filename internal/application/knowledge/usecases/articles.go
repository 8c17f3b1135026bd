package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/orris-inc/servicedesk/internal/application/knowledge/dto"
	"github.com/orris-inc/servicedesk/internal/domain/knowledge"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/markdown"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

const (
	excerptLength   = 200
	maxSlugAttempts = 50
)

type ArticleCommand struct {
	Actor    authorization.Actor
	Title    string
	Content  string
	Category string
	Tags     []string
}

type ListArticlesQuery struct {
	Actor    authorization.Actor
	Status   string
	Category string
	Search   string
	Page     int
	PageSize int
}

type ListArticlesResult struct {
	Articles []*dto.ArticleDTO
	Total    int64
	Page     int
	PageSize int
}

// ArticleUseCases groups the knowledge base operations.
type ArticleUseCases struct {
	repo     knowledge.Repository
	index    knowledge.SearchIndex
	renderer markdown.Renderer
	logger   logger.Interface
}

// NewArticleUseCases builds the use cases. index may be nil.
func NewArticleUseCases(repo knowledge.Repository, index knowledge.SearchIndex, renderer markdown.Renderer, logger logger.Interface) *ArticleUseCases {
	return &ArticleUseCases{repo: repo, index: index, renderer: renderer, logger: logger}
}

func (uc *ArticleUseCases) List(ctx context.Context, q ListArticlesQuery) (*ListArticlesResult, error) {
	p := utils.ValidatePagination(q.Page, q.PageSize)
	statuses, err := visibleStatuses(q.Actor, q.Status)
	if err != nil {
		return nil, err
	}
	search := strings.TrimSpace(q.Search)
	category := strings.TrimSpace(q.Category)

	var (
		articles []*knowledge.Article
		total    int64
	)
	if search != "" && uc.searchAvailable() {
		articles, total, err = uc.searchIndexed(ctx, knowledge.SearchQuery{
			Text:     search,
			TenantID: q.Actor.TenantFilter(),
			Statuses: statuses,
			Category: category,
			Offset:   p.Offset(),
			Limit:    p.PageSize,
		})
		if err != nil {
			// fall back to the database when the index misbehaves
			uc.logger.Warnw("search index query failed, using database search", "error", err)
			articles = nil
		}
	}
	if articles == nil {
		articles, total, err = uc.repo.List(ctx, knowledge.Filter{
			TenantID: q.Actor.TenantFilter(),
			Statuses: statuses,
			Category: category,
			Search:   search,
			Page:     p.Page,
			PageSize: p.PageSize,
		})
		if err != nil {
			uc.logger.Errorw("failed to list articles", "error", err)
			return nil, errors.NewInternalError("failed to list articles")
		}
	}

	out := make([]*dto.ArticleDTO, 0, len(articles))
	for _, a := range articles {
		d := dto.ToArticleDTO(a)
		d.Excerpt = uc.renderer.Excerpt(a.Content(), excerptLength)
		d.Content = ""
		out = append(out, d)
	}
	return &ListArticlesResult{Articles: out, Total: total, Page: p.Page, PageSize: p.PageSize}, nil
}

func (uc *ArticleUseCases) searchIndexed(ctx context.Context, q knowledge.SearchQuery) ([]*knowledge.Article, int64, error) {
	ids, total, err := uc.index.Search(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	articles, err := uc.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	if articles == nil {
		articles = []*knowledge.Article{}
	}
	return articles, total, nil
}

// Get returns the article with rendered HTML and counts the view.
func (uc *ArticleUseCases) Get(ctx context.Context, actor authorization.Actor, id uint) (*dto.ArticleDTO, error) {
	a, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.IncrementViews(ctx, a.ID()); err != nil {
		uc.logger.Warnw("failed to increment article views", "article_id", a.ID(), "error", err)
	}

	out := dto.ToArticleDTO(a)
	out.ViewCount++
	html, err := uc.renderer.Render(a.Content())
	if err != nil {
		uc.logger.Errorw("failed to render article", "article_id", a.ID(), "error", err)
		return nil, errors.NewInternalError("failed to render article")
	}
	out.HTML = html
	return out, nil
}

func (uc *ArticleUseCases) Create(ctx context.Context, cmd ArticleCommand) (*dto.ArticleDTO, error) {
	a, err := knowledge.NewArticle(cmd.Actor.TenantID, cmd.Actor.UserID, cmd.Title, cmd.Content, cmd.Category, cmd.Tags)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	slug, err := uc.uniqueSlug(ctx, knowledge.Slugify(a.Title()))
	if err != nil {
		uc.logger.Errorw("failed to resolve article slug", "error", err)
		return nil, errors.NewInternalError("failed to create article")
	}
	a.SetSlug(slug)

	if err := uc.repo.Create(ctx, a); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("article slug already exists")
		}
		uc.logger.Errorw("failed to create article", "error", err)
		return nil, errors.NewInternalError("failed to create article")
	}

	uc.logger.Infow("article created successfully", "article_id", a.ID(), "slug", a.Slug(), "author_id", a.AuthorID())
	uc.reindex(ctx, a)
	return dto.ToArticleDTO(a), nil
}

// Update edits the article. A title change moves the slug as well.
func (uc *ArticleUseCases) Update(ctx context.Context, id uint, cmd ArticleCommand) (*dto.ArticleDTO, error) {
	a, err := uc.load(ctx, cmd.Actor, id)
	if err != nil {
		return nil, err
	}
	oldTitle := a.Title()
	if err := a.Edit(cmd.Title, cmd.Content, cmd.Category, cmd.Tags); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if a.Title() != oldTitle {
		next := knowledge.Slugify(a.Title())
		if next != a.Slug() {
			slug, err := uc.uniqueSlug(ctx, next)
			if err != nil {
				uc.logger.Errorw("failed to resolve article slug", "article_id", id, "error", err)
				return nil, errors.NewInternalError("failed to update article")
			}
			a.SetSlug(slug)
		}
	}
	return uc.save(ctx, a, "failed to update article")
}

func (uc *ArticleUseCases) Publish(ctx context.Context, actor authorization.Actor, id uint) (*dto.ArticleDTO, error) {
	a, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := a.Publish(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return uc.save(ctx, a, "failed to publish article")
}

func (uc *ArticleUseCases) Archive(ctx context.Context, actor authorization.Actor, id uint) (*dto.ArticleDTO, error) {
	a, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := a.Archive(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return uc.save(ctx, a, "failed to archive article")
}

// Vote records a helpful or not helpful vote on a published article.
func (uc *ArticleUseCases) Vote(ctx context.Context, actor authorization.Actor, id uint, helpful bool) (*dto.ArticleDTO, error) {
	a, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !a.IsPublished() {
		return nil, errors.NewValidationError("only published articles can be voted on")
	}
	if err := uc.repo.AddVote(ctx, a.ID(), helpful); err != nil {
		uc.logger.Errorw("failed to record vote", "article_id", id, "error", err)
		return nil, errors.NewInternalError("failed to record vote")
	}
	uc.logger.Infow("article vote recorded", "article_id", id, "helpful", helpful, "user_id", actor.UserID)

	updated, err := uc.repo.GetByID(ctx, a.ID())
	if err != nil || updated == nil {
		uc.logger.Warnw("failed to reload article after vote", "article_id", id, "error", err)
		return dto.ToArticleDTO(a), nil
	}
	return dto.ToArticleDTO(updated), nil
}

func (uc *ArticleUseCases) Delete(ctx context.Context, actor authorization.Actor, id uint) error {
	a, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, a.ID()); err != nil {
		uc.logger.Errorw("failed to delete article", "article_id", id, "error", err)
		return errors.NewInternalError("failed to delete article")
	}
	uc.logger.Infow("article deleted successfully", "article_id", id)
	if uc.searchAvailable() {
		if err := uc.index.Remove(ctx, id); err != nil {
			uc.logger.Warnw("failed to remove article from search index", "article_id", id, "error", err)
		}
	}
	return nil
}

func (uc *ArticleUseCases) save(ctx context.Context, a *knowledge.Article, failure string) (*dto.ArticleDTO, error) {
	if err := uc.repo.Update(ctx, a); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("article slug already exists")
		}
		uc.logger.Errorw(failure, "article_id", a.ID(), "error", err)
		return nil, errors.NewInternalError(failure)
	}
	uc.logger.Infow("article saved successfully", "article_id", a.ID(), "status", a.Status())
	uc.reindex(ctx, a)
	return dto.ToArticleDTO(a), nil
}

// load hides articles of other tenants, and unpublished ones from end users.
func (uc *ArticleUseCases) load(ctx context.Context, actor authorization.Actor, id uint) (*knowledge.Article, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get article", "article_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get article")
	}
	if a == nil {
		return nil, errors.NewNotFoundError("article not found")
	}
	if a.TenantID() != nil && !actor.CanAccessTenant(a.TenantID()) {
		return nil, errors.NewNotFoundError("article not found")
	}
	if actor.IsEndUserOnly() && !a.IsPublished() {
		return nil, errors.NewNotFoundError("article not found")
	}
	return a, nil
}

func (uc *ArticleUseCases) uniqueSlug(ctx context.Context, base string) (string, error) {
	slug := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		exists, err := uc.repo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("no free slug for %q after %d attempts", base, maxSlugAttempts)
}

func (uc *ArticleUseCases) reindex(ctx context.Context, a *knowledge.Article) {
	if !uc.searchAvailable() {
		return
	}
	if err := uc.index.Index(ctx, a); err != nil {
		uc.logger.Warnw("failed to index article", "article_id", a.ID(), "error", err)
	}
}

func (uc *ArticleUseCases) searchAvailable() bool {
	return uc.index != nil && uc.index.Available()
}

func visibleStatuses(actor authorization.Actor, status string) ([]knowledge.Status, error) {
	if actor.IsEndUserOnly() {
		return []knowledge.Status{knowledge.StatusPublished}, nil
	}
	if status == "" {
		return nil, nil
	}
	s := knowledge.Status(strings.ToUpper(status))
	if !s.IsValid() {
		return nil, errors.NewValidationError("invalid article status: " + status)
	}
	return []knowledge.Status{s}, nil
}
