// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/application/container"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/caching/cleanup"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/presentation/http/server"
	"github.com/anja687gutierrez-jpg/goiconicway/pkg/config"
	"github.com/gin-gonic/gin"
)

// Initialize performs the complete startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	log.Println("\033[32m" + `

   ▄██▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄██▄
    ██  GoIconicWay engagement engine             ██
   ▀██▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀██▀
` + "\033[0m")

	// Step 1: Create dependency injection container
	log.Println("Initializing dependency injection container...")
	appContainer, err := container.NewContainer()
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}

	logger := appContainer.Logger
	logger.Startup().Info("Container initialization complete - switching to channeled logging")

	// Step 2: Start the operator activity broadcaster
	go appContainer.SysOpBroadcaster.Run()
	logger.Startup().Info("SysOp activity broadcaster started")

	// Step 3: Start background cleanup worker
	cleanupConfig := cleanup.NewConfig(config.SessionCleanupInterval)
	cleanupWorker := cleanup.NewWorker(appContainer.CacheManager, cleanupConfig, logger)
	go cleanupWorker.Start(ctx)
	logger.Startup().Info("Background cleanup worker started", "interval", cleanupConfig.Interval)

	// Step 4: Start the inactivity monitor
	go appContainer.EngagementService.StartInactivityMonitor(ctx)

	// Step 5: Start periodic consent retention sweep
	go runConsentPurge(ctx, appContainer)

	// Step 6: Start HTTP server
	port := config.Port
	httpServer := server.New(port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	// Cancel background tasks
	cancelBackgroundTasks()

	// Stop server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Closing database...")
	if err := appContainer.DB.Close(); err != nil {
		logger.Shutdown().Error("Error closing database", "error", err.Error())
	}

	appContainer.LogBroadcaster.Shutdown()

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// runConsentPurge removes expired consent records once a day.
func runConsentPurge(ctx context.Context, appContainer *container.Container) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := appContainer.ConsentService.PurgeExpired()
			if err != nil {
				appContainer.Logger.Consent().Error("Consent purge failed", "error", err.Error())
			} else if removed > 0 {
				appContainer.Logger.Consent().Info("Expired consents purged", "removed", removed)
			}
		}
	}
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
