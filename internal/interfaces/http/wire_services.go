package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	analyticsUsecases "github.com/orris-inc/servicedesk/internal/application/analytics/usecases"
	notificationApp "github.com/orris-inc/servicedesk/internal/application/notification"
	slaUsecases "github.com/orris-inc/servicedesk/internal/application/sla/usecases"
	ticketUsecases "github.com/orris-inc/servicedesk/internal/application/ticket/usecases"
	"github.com/orris-inc/servicedesk/internal/infrastructure/auth"
	"github.com/orris-inc/servicedesk/internal/infrastructure/cache"
	"github.com/orris-inc/servicedesk/internal/infrastructure/config"
	"github.com/orris-inc/servicedesk/internal/infrastructure/email"
	"github.com/orris-inc/servicedesk/internal/infrastructure/metrics"
	"github.com/orris-inc/servicedesk/internal/infrastructure/permission"
	"github.com/orris-inc/servicedesk/internal/infrastructure/pubsub"
	"github.com/orris-inc/servicedesk/internal/infrastructure/ratelimit"
	"github.com/orris-inc/servicedesk/internal/infrastructure/scheduler"
	"github.com/orris-inc/servicedesk/internal/infrastructure/search"
	"github.com/orris-inc/servicedesk/internal/infrastructure/services"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/middleware"
	sharedConfig "github.com/orris-inc/servicedesk/internal/shared/config"
	"github.com/orris-inc/servicedesk/internal/shared/db"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/markdown"
)

const analyticsCachePrefix = "analytics"

// ============================================================
// Section 1: Infrastructure - Redis, Repositories, Auth, Permissions
// ============================================================

// initInfrastructure connects Redis when enabled, builds repositories, the
// token service, the casbin enforcer and the middlewares every route group
// depends on.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Enabled {
		client, err := initRedis(cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
	} else {
		log.Warnw("redis disabled, login rate limiting and cross-instance relay are off")
	}

	c.repos = newRepositories(c.db, log)
	c.txManager = db.NewTransactionManager(c.db)
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	jwtSvc, err := auth.NewJWTServiceFromConfig(cfg.Auth.JWT)
	if err != nil {
		return fmt.Errorf("failed to build jwt service: %w", err)
	}
	c.jwtSvc = jwtSvc

	enforcer, err := permission.NewEnforcer(c.db, log)
	if err != nil {
		return fmt.Errorf("failed to build permission enforcer: %w", err)
	}
	if err := permission.InitDefaultPermissions(enforcer); err != nil {
		return fmt.Errorf("failed to seed default permissions: %w", err)
	}
	c.enforcer = enforcer

	c.metrics = metrics.New()

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)
	if c.redis != nil {
		c.loginLimiter = middleware.NewRateLimiter(
			ratelimit.NewRedisRateLimiter(c.redis),
			"login",
			ratelimit.Limits{PerMinute: cfg.RateLimit.LoginPerMinute, PerHour: cfg.RateLimit.LoginPerHour},
			log,
		)
	}
	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.GetAddr(), err)
	}
	log.Infow("redis connection established", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

// ============================================================
// Section 2: Realtime - Broker, Relay, Notifier, Hub
// ============================================================

// initRealtime builds the event broker. With Redis the local broker is
// wrapped in a relay so socket frames reach users connected to any instance.
func (c *Container) initRealtime() {
	local := pubsub.NewMemoryBroker()
	c.broker = local
	if c.redis != nil {
		c.relay = pubsub.NewRedisRelay(local, c.redis, c.cfg.Redis.RelayChannel, c.log)
		c.broker = c.relay
	}
	c.publisher = pubsub.NewEventPublisher(c.broker)

	var sender notificationApp.EmailSender
	if c.cfg.Email.Enabled {
		sender = email.NewSMTPEmailService(email.SMTPConfigFrom(c.cfg.Email))
	} else {
		c.log.Infow("email delivery disabled")
	}

	c.notifier = notificationApp.NewNotifier(
		c.repos.notificationRepo,
		c.repos.preferenceRepo,
		c.repos.userRepo,
		c.publisher,
		sender,
		c.metrics,
		c.log,
	)

	c.hub = services.NewNotificationHub(
		c.broker,
		ticketUsecases.NewTicketAccess(c.repos.ticketRepo),
		c.metrics,
		c.log.Named("hub"),
	)
}

// ============================================================
// Section 3: Supporting services - Search, Markdown, Cache, Numbers
// ============================================================

func (c *Container) initSupportServices() {
	if c.cfg.Search.MeiliURL != "" {
		c.meili = search.NewMeiliIndex(c.cfg.Search.MeiliURL, c.cfg.Search.MeiliAPIKey, c.cfg.Search.Index, c.log.Named("search"))
	} else {
		c.log.Infow("meilisearch not configured, knowledge search uses the database")
	}

	c.renderer = markdown.NewRenderer()
	c.ticketNumbers = services.NewTicketNumberGenerator(c.db)
	c.slaResolver = slaUsecases.NewPolicyResolver(c.repos.slaPolicyRepo)

	if c.redis != nil {
		c.analyticsCache = cache.NewRedisJSONCache(c.redis, analyticsCachePrefix)
	}
}

// analyticsTTL returns the configured report cache TTL.
func (c *Container) analyticsTTL() time.Duration {
	if c.cfg.Analytics.CacheTTLSeconds <= 0 {
		return analyticsUsecases.DefaultCacheTTL
	}
	return time.Duration(c.cfg.Analytics.CacheTTLSeconds) * time.Second
}

// ============================================================
// Section 4: Scheduler - SLA breach sweep
// ============================================================

func (c *Container) initScheduler() error {
	if !c.cfg.Scheduler.Enabled {
		c.log.Infow("scheduler disabled")
		return nil
	}

	interval, err := sharedConfig.ParseDuration(c.cfg.Scheduler.SLASweepInterval)
	if err != nil {
		return fmt.Errorf("invalid scheduler.sla_sweep_interval %q: %w", c.cfg.Scheduler.SLASweepInterval, err)
	}

	mgr, err := scheduler.NewSchedulerManager(c.log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	sweeper := slaUsecases.NewSweepBreachesUseCase(
		c.repos.slaTrackingRepo,
		c.repos.ticketRepo,
		c.repos.userRepo,
		c.notifier,
		c.log,
	)
	if err := mgr.RegisterSLASweepJob(sweeper, c.metrics, interval); err != nil {
		return fmt.Errorf("failed to register sla sweep job: %w", err)
	}
	c.schedulerManager = mgr
	return nil
}
