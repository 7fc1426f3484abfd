// Package cleanup provides the background worker evicting expired sessions.
package cleanup

import (
	"context"
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/caching/manager"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
)

// Config holds cleanup worker settings.
type Config struct {
	Interval time.Duration
}

// NewConfig returns cleanup settings with the given sweep interval.
func NewConfig(interval time.Duration) *Config {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Config{Interval: interval}
}

// Worker periodically sweeps the session store.
type Worker struct {
	cacheManager *manager.Manager
	config       *Config
	logger       *logging.ChanneledLogger
}

// NewWorker creates a cleanup worker.
func NewWorker(cacheManager *manager.Manager, config *Config, logger *logging.ChanneledLogger) *Worker {
	return &Worker{
		cacheManager: cacheManager,
		config:       config,
		logger:       logger,
	}
}

// Start runs the sweep loop until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	w.logger.Cache().Info("Session cleanup worker started", "interval", w.config.Interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Cache().Info("Session cleanup worker stopped")
			return
		case <-ticker.C:
			start := time.Now()
			removed := w.cacheManager.RemoveExpiredSessions(time.Now())
			if removed > 0 {
				w.logger.Cache().Info("Cleanup sweep complete",
					"removed", removed,
					"remaining", w.cacheManager.SessionCount(),
					"duration", time.Since(start))
			}
		}
	}
}
