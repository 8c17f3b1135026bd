package routes

import (
	"github.com/gin-gonic/gin"

	vo "github.com/orris-inc/servicedesk/internal/domain/permission/value_objects"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/middleware"
)

type NotificationRouteConfig struct {
	NotificationHandler  *handlers.NotificationHandler
	WSHandler            *handlers.WSHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupNotificationRoutes configures the inbox and the realtime socket.
// Every route is scoped to the caller.
func SetupNotificationRoutes(api *gin.RouterGroup, cfg *NotificationRouteConfig) {
	notifications := api.Group("/notifications")
	notifications.Use(
		cfg.AuthMiddleware.RequireAuth(),
		cfg.PermissionMiddleware.RequirePermission(vo.ResourceNotifications, vo.ActionRead),
	)
	{
		notifications.GET("", cfg.NotificationHandler.ListNotifications)
		notifications.GET("/unread-count", cfg.NotificationHandler.UnreadCount)
		notifications.POST("/read-all", cfg.NotificationHandler.MarkAllRead)
		notifications.GET("/preferences", cfg.NotificationHandler.GetPreferences)
		notifications.PUT("/preferences", cfg.NotificationHandler.UpdatePreferences)

		notifications.POST("/:id/read", cfg.NotificationHandler.MarkRead)
		notifications.DELETE("/:id", cfg.NotificationHandler.DeleteNotification)
	}

	// Browsers cannot set headers on a websocket handshake.
	api.GET("/ws", cfg.AuthMiddleware.RequireAuthOrQueryToken(), cfg.WSHandler.Connect)
}
