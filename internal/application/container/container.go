// Package container provides dependency injection for all singleton services
package container

import (
	"fmt"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/application/services"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/caching/manager"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/email"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/llm"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/messaging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/performance"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/persistence/analytics"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/persistence/database"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/persistence/user"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/ratelimit"
	"github.com/anja687gutierrez-jpg/goiconicway/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services
	EngagementService *services.EngagementService
	SessionService    *services.SessionService
	ConciergeService  *services.ConciergeService
	CheckoutService   *services.CheckoutService
	LeadService       *services.LeadService
	ConsentService    *services.ConsentService
	AnalyticsService  *services.AnalyticsService
	AuthService       *services.AuthService

	// Infrastructure
	CacheManager     *manager.Manager
	Broadcaster      *messaging.SSEBroadcaster
	SysOpBroadcaster *messaging.SysOpBroadcaster
	LogBroadcaster   *logging.LogBroadcaster
	Logger           *logging.ChanneledLogger
	PerfTracker      *performance.Tracker
	DB               *database.DB
}

// NewContainer creates and wires all singleton services
func NewContainer() (*Container, error) {
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	perfTracker := performance.NewTracker(1000)
	cacheManager := manager.NewManager(config.JournalCapacity, logger)
	broadcaster := messaging.NewSSEBroadcaster(logger)
	sysopBroadcaster := messaging.NewSysOpBroadcaster(cacheManager, logger)
	logBroadcaster := logging.GetBroadcaster()

	driverName, dataSourceName := database.ResolveDriver()
	db, err := database.NewConnectionWithLogger(driverName, dataSourceName, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.NewTableCreator().CreateSchema(db.DB); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	leadRepo := user.NewSQLLeadRepository(db, logger)
	consentRepo := user.NewSQLConsentRepository(db, logger)
	eventRepo := analytics.NewSQLEventRepository(db, logger)

	redisClient := ratelimit.NewRedisClient(config.RedisAddr, config.RedisPassword, config.RedisDB)
	limiter := ratelimit.NewLimiter(redisClient, logger)

	llmClient := llm.NewClient(config.ConciergeUpstreamURL, config.GroqAPIKey, config.ConciergeModel, config.ConciergeMaxTokens, config.ConciergeTimeout, logger)

	// Email delivery is optional; without an API key, lead capture still works.
	emailService, err := email.NewService()
	if err != nil {
		logger.Startup().Warn("Email delivery disabled", "reason", err.Error())
		emailService = nil
	}

	analyticsService := services.NewAnalyticsService(cacheManager, eventRepo, logger)
	engagementService := services.NewEngagementService(cacheManager, broadcaster, analyticsService, logger, perfTracker)
	sessionService := services.NewSessionService(cacheManager, engagementService, logger, perfTracker)
	conciergeService := services.NewConciergeService(llmClient, limiter, logger, perfTracker)
	checkoutService := services.NewCheckoutService(logger, perfTracker, analyticsService)
	leadService := services.NewLeadService(leadRepo, cacheManager, emailService, engagementService, analyticsService, logger)
	consentService := services.NewConsentService(consentRepo, logger)
	analyticsService.SetConsentService(consentService)
	authService := services.NewAuthService(logger)

	return &Container{
		EngagementService: engagementService,
		SessionService:    sessionService,
		ConciergeService:  conciergeService,
		CheckoutService:   checkoutService,
		LeadService:       leadService,
		ConsentService:    consentService,
		AnalyticsService:  analyticsService,
		AuthService:       authService,

		CacheManager:     cacheManager,
		Broadcaster:      broadcaster,
		SysOpBroadcaster: sysopBroadcaster,
		LogBroadcaster:   logBroadcaster,
		Logger:           logger,
		PerfTracker:      perfTracker,
		DB:               db,
	}, nil
}
