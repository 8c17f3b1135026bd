package routes

import (
	"github.com/gin-gonic/gin"

	vo "github.com/orris-inc/servicedesk/internal/domain/permission/value_objects"
	tickethandlers "github.com/orris-inc/servicedesk/internal/interfaces/http/handlers/ticket"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupTicketRoutes configures ticket routes. The status route stays open
// to requesters; the use case limits them to closing or reopening their own
// tickets.
func SetupTicketRoutes(api *gin.RouterGroup, cfg *TicketRouteConfig) {
	perm := cfg.PermissionMiddleware
	read := perm.RequirePermission(vo.ResourceTickets, vo.ActionRead)
	write := perm.RequirePermission(vo.ResourceTickets, vo.ActionWrite)

	tickets := api.Group("/tickets")
	tickets.Use(cfg.AuthMiddleware.RequireAuth())
	{
		tickets.POST("", write, cfg.TicketHandler.CreateTicket)
		tickets.GET("", read, cfg.TicketHandler.ListTickets)

		tickets.POST("/:id/assign",
			perm.RequirePermission(vo.ResourceTickets, vo.ActionAssign),
			cfg.TicketHandler.AssignTicket)
		tickets.POST("/:id/status", write, cfg.TicketHandler.ChangeStatus)
		tickets.POST("/:id/comments", write, cfg.TicketHandler.AddComment)
		tickets.GET("/:id/history", read, cfg.TicketHandler.GetHistory)
		tickets.GET("/:id/sla", read, cfg.TicketHandler.GetSLA)

		tickets.GET("/:id", read, cfg.TicketHandler.GetTicket)
		tickets.PUT("/:id", write, cfg.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id",
			perm.RequirePermission(vo.ResourceTickets, vo.ActionDelete),
			cfg.TicketHandler.DeleteTicket)
	}
}
