package routes

import (
	"github.com/gin-gonic/gin"

	vo "github.com/orris-inc/servicedesk/internal/domain/permission/value_objects"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/middleware"
)

type SLARouteConfig struct {
	SLAHandler           *handlers.SLAHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupSLARoutes(api *gin.RouterGroup, cfg *SLARouteConfig) {
	perm := cfg.PermissionMiddleware

	policies := api.Group("/sla-policies")
	policies.Use(cfg.AuthMiddleware.RequireAuth())
	{
		policies.GET("", perm.RequirePermission(vo.ResourceSLAPolicies, vo.ActionRead), cfg.SLAHandler.ListPolicies)
		policies.POST("", perm.RequirePermission(vo.ResourceSLAPolicies, vo.ActionWrite), cfg.SLAHandler.CreatePolicy)
		policies.PUT("/:id", perm.RequirePermission(vo.ResourceSLAPolicies, vo.ActionWrite), cfg.SLAHandler.UpdatePolicy)
		policies.DELETE("/:id", perm.RequirePermission(vo.ResourceSLAPolicies, vo.ActionDelete), cfg.SLAHandler.DeletePolicy)
	}
}
