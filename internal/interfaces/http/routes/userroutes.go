package routes

import (
	"github.com/gin-gonic/gin"

	vo "github.com/orris-inc/servicedesk/internal/domain/permission/value_objects"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for user management routes.
type UserRouteConfig struct {
	UserHandler          *handlers.UserHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupUserRoutes configures user management and the assignee picker.
func SetupUserRoutes(api *gin.RouterGroup, cfg *UserRouteConfig) {
	perm := cfg.PermissionMiddleware

	users := api.Group("/users")
	users.Use(cfg.AuthMiddleware.RequireAuth())
	{
		users.GET("", perm.RequirePermission(vo.ResourceUsers, vo.ActionRead), cfg.UserHandler.ListUsers)
		users.POST("", perm.RequirePermission(vo.ResourceUsers, vo.ActionWrite), cfg.UserHandler.CreateUser)

		users.POST("/:id/activate", perm.RequirePermission(vo.ResourceUsers, vo.ActionWrite), cfg.UserHandler.ActivateUser)
		users.POST("/:id/deactivate", perm.RequirePermission(vo.ResourceUsers, vo.ActionWrite), cfg.UserHandler.DeactivateUser)
		users.PUT("/:id/roles", perm.RequirePermission(vo.ResourceUsers, vo.ActionWrite), cfg.UserHandler.SetRoles)

		users.GET("/:id", perm.RequirePermission(vo.ResourceUsers, vo.ActionRead), cfg.UserHandler.GetUser)
		users.PUT("/:id", perm.RequirePermission(vo.ResourceUsers, vo.ActionWrite), cfg.UserHandler.UpdateUser)
		users.DELETE("/:id", perm.RequirePermission(vo.ResourceUsers, vo.ActionDelete), cfg.UserHandler.DeleteUser)
	}

	api.GET("/agents",
		cfg.AuthMiddleware.RequireAuth(),
		perm.RequirePermission(vo.ResourceAgents, vo.ActionRead),
		cfg.UserHandler.ListAgents)
}
