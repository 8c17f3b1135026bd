package http

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/interfaces/http/handlers"
	tickethandlers "github.com/orris-inc/servicedesk/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds every HTTP handler mounted by the router.
type allHandlers struct {
	authHandler         *handlers.AuthHandler
	userHandler         *handlers.UserHandler
	tenantHandler       *handlers.TenantHandler
	ticketHandler       *tickethandlers.TicketHandler
	slaHandler          *handlers.SLAHandler
	customFieldHandler  *handlers.CustomFieldHandler
	assetHandler        *handlers.AssetHandler
	knowledgeHandler    *handlers.KnowledgeHandler
	notificationHandler *handlers.NotificationHandler
	analyticsHandler    *handlers.AnalyticsHandler
	healthHandler       *handlers.HealthHandler
	wsHandler           *handlers.WSHandler
}

// ============================================================
// Section 6: Handlers
// ============================================================

func (c *Container) initHandlers() {
	u := c.ucs
	log := c.log

	c.hdlrs = &allHandlers{
		authHandler: handlers.NewAuthHandler(u.login, u.register, u.refreshToken, u.changePassword, u.currentUser, log),
		userHandler: handlers.NewUserHandler(handlers.UserUseCases{
			List:      u.listUsers,
			Create:    u.createUser,
			Get:       u.getUser,
			Update:    u.updateUser,
			SetActive: u.setUserActive,
			SetRoles:  u.setUserRoles,
			Delete:    u.deleteUser,
			Agents:    u.listAgents,
		}, log),
		tenantHandler: handlers.NewTenantHandler(u.organizations, u.tenants, log),
		ticketHandler: tickethandlers.NewTicketHandler(tickethandlers.UseCases{
			Create:       u.createTicket,
			List:         u.listTickets,
			Get:          u.getTicket,
			Update:       u.updateTicket,
			Assign:       u.assignTicket,
			ChangeStatus: u.changeStatus,
			AddComment:   u.addComment,
			History:      u.ticketHistory,
			SLA:          u.ticketSLA,
			Delete:       u.deleteTicket,
		}, log),
		slaHandler:          handlers.NewSLAHandler(u.slaPolicies, log),
		customFieldHandler:  handlers.NewCustomFieldHandler(u.ticketTypes, u.fields, log),
		assetHandler:        handlers.NewAssetHandler(u.assets, log),
		knowledgeHandler:    handlers.NewKnowledgeHandler(u.articles, log),
		notificationHandler: handlers.NewNotificationHandler(u.notifications, u.preferences, log),
		analyticsHandler:    handlers.NewAnalyticsHandler(u.analytics, log),
		healthHandler:       handlers.NewHealthHandler(c.databasePinger(), c.redisPinger(), log),
		wsHandler:           handlers.NewWSHandler(c.hub, c.cfg.Server.AllowedOrigins, log.Named("ws")),
	}
}

func (c *Container) databasePinger() handlers.Pinger {
	return handlers.PingFunc(func(ctx context.Context) error {
		sqlDB, err := c.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
}

// redisPinger returns nil when redis is disabled so health reports it as such.
func (c *Container) redisPinger() handlers.Pinger {
	if c.redis == nil {
		return nil
	}
	return handlers.PingFunc(func(ctx context.Context) error {
		return c.redis.Ping(ctx).Err()
	})
}
