// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/anja687gutierrez-jpg/goiconicway/internal/application/container"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/presentation/http/handlers"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Serve static SysOp dashboard files from the /sysop URL.
	r.Static("/sysop", "web/sysop")

	// Initialize handlers
	visitHandlers := handlers.NewVisitHandlers(container.SessionService, container.ConsentService, container.Broadcaster, container.Logger, container.PerfTracker)
	engagementHandlers := handlers.NewEngagementHandlers(container.EngagementService, container.SessionService, container.Logger, container.PerfTracker)
	conciergeHandlers := handlers.NewConciergeHandlers(container.ConciergeService, container.Logger, container.PerfTracker)
	checkoutHandlers := handlers.NewCheckoutHandlers(container.CheckoutService, container.Logger, container.PerfTracker)
	leadHandlers := handlers.NewLeadHandlers(container.LeadService, container.ConsentService, container.Logger, container.PerfTracker)
	sysopHandlers := handlers.NewSysOpHandlers(container)

	// SysOp API endpoints live under /api/sysop to avoid conflict with static
	// file serving.
	sysopAPI := r.Group("/api/sysop")
	{
		sysopAPI.GET("/auth", sysopHandlers.AuthCheck)
		sysopAPI.POST("/login", sysopHandlers.Login)

		// SysOp Authenticated endpoints
		sysopAPI.Use(sysopHandlers.SysOpAuthMiddleware())
		{
			sysopAPI.GET("/activity", sysopHandlers.GetActivityMetrics)
			sysopAPI.GET("/activity/ws", sysopHandlers.ActivityWS)
			sysopAPI.GET("/logs/levels", sysopHandlers.GetLogLevels)
			sysopAPI.POST("/logs/levels", sysopHandlers.SetLogLevel)
		}
	}

	// Log streaming is a special case and can remain at top level
	r.GET("/sysop-logs/stream", sysopHandlers.StreamLogs)

	// API routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", conciergeHandlers.GetHealth)

		// Visit handshake and server push
		auth := api.Group("/auth")
		{
			auth.POST("/visit", visitHandlers.PostVisit)
			auth.GET("/sse", visitHandlers.GetSSE)
		}

		// Concierge, guide, and checkout proxies
		api.POST("/concierge", conciergeHandlers.PostConcierge)
		api.GET("/guide", conciergeHandlers.GetGuide)
		api.POST("/checkout", checkoutHandlers.PostCheckout)

		// Leads and consent
		api.POST("/leads", leadHandlers.PostLead)
		api.GET("/consent/:fingerprint", leadHandlers.GetConsent)
		api.POST("/consent", leadHandlers.PostConsent)

		// Session-scoped engagement endpoints
		session := api.Group("")
		session.Use(middleware.SessionMiddleware())
		{
			session.POST("/events", engagementHandlers.PostEvent)
			session.POST("/messages/dismiss", engagementHandlers.PostDismiss)
			session.POST("/messages/help", engagementHandlers.PostHelp)
			session.GET("/side-channels", engagementHandlers.GetSideChannels)
			session.POST("/side-channels", engagementHandlers.PostSideChannel)
			session.GET("/state", visitHandlers.GetState)
		}
	}

	return r
}
