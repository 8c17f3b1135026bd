package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/orris-inc/servicedesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/routes"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/validators"

	_ "github.com/orris-inc/servicedesk/docs"
)

const apiPrefix = "/api/v1"

// SetupRoutes installs the global middleware chain and mounts every route group.
func (c *Container) SetupRoutes() error {
	if err := validators.Register(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	e := c.engine
	e.Use(
		middleware.RequestID(),
		middleware.Recovery(c.log),
		middleware.Logger(c.log),
		middleware.CORS(c.cfg.Server.AllowedOrigins),
		middleware.SecurityHeaders(),
	)
	if c.cfg.Metrics.Enabled {
		e.Use(middleware.Metrics(c.metrics))
		e.GET(c.metricsPath(), gin.WrapH(c.metrics.Handler()))
	}

	e.GET("/health", c.hdlrs.healthHandler.Check)

	if c.cfg.Server.Mode != gin.ReleaseMode {
		e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := c.hdlrs
	auth := c.authMiddleware
	perm := c.permissionMiddleware
	api := e.Group(apiPrefix)

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    h.authHandler,
		AuthMiddleware: auth,
		LoginLimiter:   c.loginLimiter,
	})
	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		UserHandler:          h.userHandler,
		AuthMiddleware:       auth,
		PermissionMiddleware: perm,
	})
	routes.SetupTenantRoutes(api, &routes.TenantRouteConfig{
		TenantHandler:        h.tenantHandler,
		AuthMiddleware:       auth,
		PermissionMiddleware: perm,
	})
	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:        h.ticketHandler,
		AuthMiddleware:       auth,
		PermissionMiddleware: perm,
	})
	routes.SetupSLARoutes(api, &routes.SLARouteConfig{
		SLAHandler:           h.slaHandler,
		AuthMiddleware:       auth,
		PermissionMiddleware: perm,
	})
	routes.SetupCustomFieldRoutes(api, &routes.CustomFieldRouteConfig{
		CustomFieldHandler:   h.customFieldHandler,
		AuthMiddleware:       auth,
		PermissionMiddleware: perm,
	})
	routes.SetupAssetRoutes(api, &routes.AssetRouteConfig{
		AssetHandler:         h.assetHandler,
		TicketHandler:        h.ticketHandler,
		AuthMiddleware:       auth,
		PermissionMiddleware: perm,
	})
	routes.SetupKnowledgeRoutes(api, &routes.KnowledgeRouteConfig{
		KnowledgeHandler:     h.knowledgeHandler,
		AuthMiddleware:       auth,
		PermissionMiddleware: perm,
	})
	routes.SetupNotificationRoutes(api, &routes.NotificationRouteConfig{
		NotificationHandler:  h.notificationHandler,
		WSHandler:            h.wsHandler,
		AuthMiddleware:       auth,
		PermissionMiddleware: perm,
	})
	routes.SetupAnalyticsRoutes(api, &routes.AnalyticsRouteConfig{
		AnalyticsHandler:     h.analyticsHandler,
		AuthMiddleware:       auth,
		PermissionMiddleware: perm,
	})

	return nil
}

func (c *Container) metricsPath() string {
	if c.cfg.Metrics.Path == "" {
		return "/metrics"
	}
	return c.cfg.Metrics.Path
}
