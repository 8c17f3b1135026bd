package routes

import (
	"github.com/gin-gonic/gin"

	vo "github.com/orris-inc/servicedesk/internal/domain/permission/value_objects"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/handlers"
	tickethandlers "github.com/orris-inc/servicedesk/internal/interfaces/http/handlers/ticket"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/middleware"
)

type AssetRouteConfig struct {
	AssetHandler         *handlers.AssetHandler
	TicketHandler        *tickethandlers.TicketHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupAssetRoutes configures CMDB routes and the caller's own assets.
func SetupAssetRoutes(api *gin.RouterGroup, cfg *AssetRouteConfig) {
	perm := cfg.PermissionMiddleware
	read := perm.RequirePermission(vo.ResourceAssets, vo.ActionRead)
	write := perm.RequirePermission(vo.ResourceAssets, vo.ActionWrite)
	assign := perm.RequirePermission(vo.ResourceAssets, vo.ActionAssign)

	assets := api.Group("/assets")
	assets.Use(cfg.AuthMiddleware.RequireAuth())
	{
		assets.GET("", read, cfg.AssetHandler.ListAssets)
		assets.POST("", write, cfg.AssetHandler.CreateAsset)

		assets.POST("/:id/assign", assign, cfg.AssetHandler.AssignAsset)
		assets.POST("/:id/unassign", assign, cfg.AssetHandler.UnassignAsset)
		assets.GET("/:id/tickets", read, cfg.AssetHandler.RequireVisibleAsset, cfg.TicketHandler.ListAssetTickets)

		assets.GET("/:id", read, cfg.AssetHandler.GetAsset)
		assets.PUT("/:id", write, cfg.AssetHandler.UpdateAsset)
		assets.DELETE("/:id", perm.RequirePermission(vo.ResourceAssets, vo.ActionDelete), cfg.AssetHandler.DeleteAsset)
	}

	api.GET("/me/assets", cfg.AuthMiddleware.RequireAuth(), cfg.AssetHandler.ListMyAssets)
}
