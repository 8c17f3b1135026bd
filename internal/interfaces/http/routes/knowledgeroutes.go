package routes

import (
	"github.com/gin-gonic/gin"

	vo "github.com/orris-inc/servicedesk/internal/domain/permission/value_objects"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/middleware"
)

type KnowledgeRouteConfig struct {
	KnowledgeHandler     *handlers.KnowledgeHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupKnowledgeRoutes(api *gin.RouterGroup, cfg *KnowledgeRouteConfig) {
	perm := cfg.PermissionMiddleware
	read := perm.RequirePermission(vo.ResourceArticles, vo.ActionRead)
	write := perm.RequirePermission(vo.ResourceArticles, vo.ActionWrite)

	articles := api.Group("/kb/articles")
	articles.Use(cfg.AuthMiddleware.RequireAuth())
	{
		articles.GET("", read, cfg.KnowledgeHandler.ListArticles)
		articles.POST("", write, cfg.KnowledgeHandler.CreateArticle)

		articles.POST("/:id/publish", write, cfg.KnowledgeHandler.PublishArticle)
		articles.POST("/:id/archive", write, cfg.KnowledgeHandler.ArchiveArticle)
		articles.POST("/:id/vote", read, cfg.KnowledgeHandler.VoteArticle)

		articles.GET("/:id", read, cfg.KnowledgeHandler.GetArticle)
		articles.PUT("/:id", write, cfg.KnowledgeHandler.UpdateArticle)
		articles.DELETE("/:id", perm.RequirePermission(vo.ResourceArticles, vo.ActionDelete), cfg.KnowledgeHandler.DeleteArticle)
	}
}
