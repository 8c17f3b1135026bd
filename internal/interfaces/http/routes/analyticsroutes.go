package routes

import (
	"github.com/gin-gonic/gin"

	vo "github.com/orris-inc/servicedesk/internal/domain/permission/value_objects"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/middleware"
)

type AnalyticsRouteConfig struct {
	AnalyticsHandler     *handlers.AnalyticsHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupAnalyticsRoutes configures reporting. Agents pass the read gate and
// are narrowed to their own tickets by the use case.
func SetupAnalyticsRoutes(api *gin.RouterGroup, cfg *AnalyticsRouteConfig) {
	perm := cfg.PermissionMiddleware
	read := perm.RequirePermission(vo.ResourceAnalytics, vo.ActionRead)

	analytics := api.Group("/analytics")
	analytics.Use(cfg.AuthMiddleware.RequireAuth())
	{
		analytics.GET("/overview", read, cfg.AnalyticsHandler.Overview)
		analytics.GET("/trend", read, cfg.AnalyticsHandler.Trend)
		analytics.GET("/agents", read, cfg.AnalyticsHandler.Agents)
		analytics.GET("/sla", read, cfg.AnalyticsHandler.SLA)
		analytics.GET("/export",
			perm.RequirePermission(vo.ResourceAnalytics, vo.ActionExport),
			cfg.AnalyticsHandler.Export)
	}
}
