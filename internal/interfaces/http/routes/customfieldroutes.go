package routes

import (
	"github.com/gin-gonic/gin"

	vo "github.com/orris-inc/servicedesk/internal/domain/permission/value_objects"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/middleware"
)

type CustomFieldRouteConfig struct {
	CustomFieldHandler   *handlers.CustomFieldHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupCustomFieldRoutes(api *gin.RouterGroup, cfg *CustomFieldRouteConfig) {
	perm := cfg.PermissionMiddleware
	h := cfg.CustomFieldHandler

	types := api.Group("/ticket-types")
	types.Use(cfg.AuthMiddleware.RequireAuth())
	{
		types.GET("", perm.RequirePermission(vo.ResourceTicketTypes, vo.ActionRead), h.ListTicketTypes)
		types.POST("", perm.RequirePermission(vo.ResourceTicketTypes, vo.ActionWrite), h.CreateTicketType)
		types.PUT("/:id", perm.RequirePermission(vo.ResourceTicketTypes, vo.ActionWrite), h.UpdateTicketType)
		types.DELETE("/:id", perm.RequirePermission(vo.ResourceTicketTypes, vo.ActionWrite), h.DeleteTicketType)
	}

	fields := api.Group("/custom-fields")
	fields.Use(cfg.AuthMiddleware.RequireAuth())
	{
		fields.GET("", perm.RequirePermission(vo.ResourceCustomFields, vo.ActionRead), h.ListCustomFields)
		fields.POST("", perm.RequirePermission(vo.ResourceCustomFields, vo.ActionWrite), h.CreateCustomField)
		fields.PUT("/:id", perm.RequirePermission(vo.ResourceCustomFields, vo.ActionWrite), h.UpdateCustomField)
		fields.DELETE("/:id", perm.RequirePermission(vo.ResourceCustomFields, vo.ActionWrite), h.DeleteCustomField)
	}
}
