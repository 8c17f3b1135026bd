package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/servicedesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	// LoginLimiter is nil when redis is not configured.
	LoginLimiter *middleware.RateLimiter
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *AuthRouteConfig) {
	limit := func(c *gin.Context) { c.Next() }
	if cfg.LoginLimiter != nil {
		limit = cfg.LoginLimiter.Limit()
	}

	auth := api.Group("/auth")
	{
		auth.POST("/login", limit, cfg.AuthHandler.Login)
		auth.POST("/register", limit, cfg.AuthHandler.Register)
		auth.POST("/refresh", cfg.AuthHandler.RefreshToken)

		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.GetCurrentUser)
		auth.POST("/change-password", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.ChangePassword)
		auth.POST("/logout", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Logout)
	}
}
