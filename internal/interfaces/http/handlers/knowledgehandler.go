package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/servicedesk/internal/application/knowledge/dto"
	"github.com/orris-inc/servicedesk/internal/application/knowledge/usecases"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

type articleService interface {
	List(ctx context.Context, q usecases.ListArticlesQuery) (*usecases.ListArticlesResult, error)
	Get(ctx context.Context, actor authorization.Actor, id uint) (*dto.ArticleDTO, error)
	Create(ctx context.Context, cmd usecases.ArticleCommand) (*dto.ArticleDTO, error)
	Update(ctx context.Context, id uint, cmd usecases.ArticleCommand) (*dto.ArticleDTO, error)
	Publish(ctx context.Context, actor authorization.Actor, id uint) (*dto.ArticleDTO, error)
	Archive(ctx context.Context, actor authorization.Actor, id uint) (*dto.ArticleDTO, error)
	Vote(ctx context.Context, actor authorization.Actor, id uint, helpful bool) (*dto.ArticleDTO, error)
	Delete(ctx context.Context, actor authorization.Actor, id uint) error
}

type ArticleRequest struct {
	Title    string   `json:"title" binding:"required,max=200"`
	Content  string   `json:"content" binding:"required,max=100000"`
	Category string   `json:"category" binding:"max=100"`
	Tags     []string `json:"tags" binding:"max=20,dive,max=50"`
}

func (r *ArticleRequest) toCommand(actor authorization.Actor) usecases.ArticleCommand {
	return usecases.ArticleCommand{
		Actor:    actor,
		Title:    r.Title,
		Content:  r.Content,
		Category: r.Category,
		Tags:     r.Tags,
	}
}

type VoteRequest struct {
	Helpful *bool `json:"helpful" binding:"required"`
}

type KnowledgeHandler struct {
	articles articleService
	logger   logger.Interface
}

func NewKnowledgeHandler(articles articleService, logger logger.Interface) *KnowledgeHandler {
	return &KnowledgeHandler{articles: articles, logger: logger}
}

// ListArticles godoc
// @Summary Browse or search knowledge base articles
// @Security Bearer
// @Tags knowledge
// @Produce json
// @Param status query string false "DRAFT|PUBLISHED|ARCHIVED"
// @Param category query string false "Category"
// @Param search query string false "Full text query"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /kb/articles [get]
func (h *KnowledgeHandler) ListArticles(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	p := utils.ParsePagination(c)

	result, err := h.articles.List(c.Request.Context(), usecases.ListArticlesQuery{
		Actor:    actor,
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Articles, result.Total, result.Page, result.PageSize)
}

// GetArticle counts a view and returns both markdown and rendered HTML.
func (h *KnowledgeHandler) GetArticle(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "article")
	if !ok {
		return
	}
	result, err := h.articles.Get(c.Request.Context(), actor, id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *KnowledgeHandler) CreateArticle(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req ArticleRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.articles.Create(c.Request.Context(), req.toCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Article created successfully")
}

func (h *KnowledgeHandler) UpdateArticle(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "article")
	if !ok {
		return
	}
	var req ArticleRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.articles.Update(c.Request.Context(), id, req.toCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Article updated successfully", result)
}

func (h *KnowledgeHandler) PublishArticle(c *gin.Context) {
	h.transition(c, h.articles.Publish, "Article published")
}

func (h *KnowledgeHandler) ArchiveArticle(c *gin.Context) {
	h.transition(c, h.articles.Archive, "Article archived")
}

func (h *KnowledgeHandler) transition(
	c *gin.Context,
	fn func(context.Context, authorization.Actor, uint) (*dto.ArticleDTO, error),
	message string,
) {
	actor, id, ok := actorAndID(c, "id", "article")
	if !ok {
		return
	}
	result, err := fn(c.Request.Context(), actor, id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

func (h *KnowledgeHandler) VoteArticle(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "article")
	if !ok {
		return
	}
	var req VoteRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.articles.Vote(c.Request.Context(), actor, id, *req.Helpful)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Vote recorded", result)
}

func (h *KnowledgeHandler) DeleteArticle(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "article")
	if !ok {
		return
	}
	if err := h.articles.Delete(c.Request.Context(), actor, id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
