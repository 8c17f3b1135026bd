package routes

import (
	"github.com/gin-gonic/gin"

	vo "github.com/orris-inc/servicedesk/internal/domain/permission/value_objects"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
)

// TenantRouteConfig holds dependencies for organization and tenant routes.
type TenantRouteConfig struct {
	TenantHandler        *handlers.TenantHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupTenantRoutes configures organizations (global admins) and tenants.
// Row-level scoping for tenant admins is enforced by the use cases.
func SetupTenantRoutes(api *gin.RouterGroup, cfg *TenantRouteConfig) {
	perm := cfg.PermissionMiddleware

	orgs := api.Group("/organizations")
	orgs.Use(cfg.AuthMiddleware.RequireAuth(), perm.RequirePermission(vo.ResourceOrganizations, vo.ActionAll))
	{
		orgs.GET("", cfg.TenantHandler.ListOrganizations)
		orgs.POST("", cfg.TenantHandler.CreateOrganization)
		orgs.GET("/:id", cfg.TenantHandler.GetOrganization)
		orgs.PUT("/:id", cfg.TenantHandler.UpdateOrganization)
		orgs.DELETE("/:id", cfg.TenantHandler.DeleteOrganization)
	}

	tenants := api.Group("/tenants")
	tenants.Use(cfg.AuthMiddleware.RequireAuth())
	{
		tenants.GET("", perm.RequirePermission(vo.ResourceTenants, vo.ActionRead), cfg.TenantHandler.ListTenants)
		tenants.POST("", middleware.RequireRole(authorization.RoleGlobalAdmin), cfg.TenantHandler.CreateTenant)

		tenants.POST("/:id/activate", perm.RequirePermission(vo.ResourceTenants, vo.ActionDelete), cfg.TenantHandler.ActivateTenant)
		tenants.POST("/:id/deactivate", perm.RequirePermission(vo.ResourceTenants, vo.ActionDelete), cfg.TenantHandler.DeactivateTenant)

		tenants.GET("/:id", perm.RequirePermission(vo.ResourceTenants, vo.ActionRead), cfg.TenantHandler.GetTenant)
		tenants.PUT("/:id", perm.RequirePermission(vo.ResourceTenants, vo.ActionWrite), cfg.TenantHandler.UpdateTenant)
	}
}
