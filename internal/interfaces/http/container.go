package http

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	notificationApp "github.com/orris-inc/servicedesk/internal/application/notification"
	slaUsecases "github.com/orris-inc/servicedesk/internal/application/sla/usecases"
	"github.com/orris-inc/servicedesk/internal/infrastructure/auth"
	"github.com/orris-inc/servicedesk/internal/infrastructure/cache"
	"github.com/orris-inc/servicedesk/internal/infrastructure/config"
	"github.com/orris-inc/servicedesk/internal/infrastructure/metrics"
	"github.com/orris-inc/servicedesk/internal/infrastructure/permission"
	"github.com/orris-inc/servicedesk/internal/infrastructure/pubsub"
	"github.com/orris-inc/servicedesk/internal/infrastructure/scheduler"
	"github.com/orris-inc/servicedesk/internal/infrastructure/search"
	"github.com/orris-inc/servicedesk/internal/infrastructure/services"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/servicedesk/internal/shared/db"
	"github.com/orris-inc/servicedesk/internal/shared/goroutine"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/markdown"
)

// Container holds all infrastructure components, repositories, use cases,
// handlers and background services. It wires everything together and owns
// their shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	loginLimiter         *middleware.RateLimiter

	// Auth and permissions
	jwtSvc   *auth.JWTService
	hasher   *auth.BcryptPasswordHasher
	enforcer *permission.Enforcer

	// Shared services
	txManager      *db.TransactionManager
	metrics        *metrics.Metrics
	meili          *search.MeiliIndex
	renderer       markdown.Renderer
	analyticsCache *cache.RedisJSONCache
	ticketNumbers  *services.TicketNumberGenerator
	slaResolver    *slaUsecases.PolicyResolver

	// Realtime
	broker    pubsub.Broker
	publisher *pubsub.EventPublisher
	notifier  *notificationApp.Notifier
	hub       *services.NotificationHub

	// Cross-instance relay, nil without redis
	relay       *pubsub.RedisRelay
	relayCancel context.CancelFunc
	relayDone   chan struct{}
	relayMu     sync.Mutex

	// Background jobs
	schedulerManager *scheduler.SchedulerManager
}

// NewContainer creates a new Container with all dependencies wired together.
// Sections run in dependency order.
func NewContainer(gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gdb,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, Repositories, Auth, Permissions
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Realtime - Broker, Relay, Notifier, Hub
	c.initRealtime()

	// Section 3: Supporting services - Search, Markdown, Cache, Numbers
	c.initSupportServices()

	// Section 4: Scheduler - SLA breach sweep
	if err := c.initScheduler(); err != nil {
		c.closeClients()
		return nil, err
	}

	// Section 5: Use cases
	c.initUseCases()

	// Section 6: Handlers
	c.initHandlers()

	return c, nil
}

// Engine returns the gin engine with routes mounted by SetupRoutes.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Start launches background work: the redis relay and the scheduler.
func (c *Container) Start(ctx context.Context) {
	if c.relay != nil {
		relayCtx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		c.relayMu.Lock()
		c.relayCancel = cancel
		c.relayDone = done
		c.relayMu.Unlock()

		goroutine.SafeGo(c.log, "redis-relay", func() {
			defer close(done)
			if err := c.relay.Run(relayCtx); err != nil && !errors.Is(err, context.Canceled) {
				c.log.Errorw("redis relay stopped", "error", err)
			}
		})
	}

	if c.schedulerManager != nil {
		c.schedulerManager.Start()
	}
}

// Shutdown stops background work, then closes sockets and clients.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error

	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("scheduler: %w", err))
		}
	}

	c.relayMu.Lock()
	cancel, done := c.relayCancel, c.relayDone
	c.relayCancel = nil
	c.relayMu.Unlock()
	if cancel != nil {
		cancel()
		select {
		case <-done:
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("redis relay: %w", ctx.Err()))
		}
	}

	if c.hub != nil {
		c.hub.CloseAll()
	}

	c.closeClients()

	c.log.Infow("container shut down")
	return errors.Join(errs...)
}

func (c *Container) closeClients() {
	if c.meili != nil {
		c.meili.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
