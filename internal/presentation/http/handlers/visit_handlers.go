// Package handlers provides HTTP handlers for the presentation layer.
package handlers

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/application/services"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/messaging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/performance"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

const maxSSEConnections = 1000

var activeSSEConnections int64

// VisitHandlers serves visit creation, session state, and the SSE stream.
type VisitHandlers struct {
	sessionService *services.SessionService
	consentService *services.ConsentService
	broadcaster    messaging.Broadcaster
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewVisitHandlers creates the visit handler group.
func NewVisitHandlers(sessionService *services.SessionService, consentService *services.ConsentService, broadcaster messaging.Broadcaster, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *VisitHandlers {
	return &VisitHandlers{
		sessionService: sessionService,
		consentService: consentService,
		broadcaster:    broadcaster,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// PostVisit handles POST /api/v1/visit - establishes or resumes a session.
func (h *VisitHandlers) PostVisit(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_visit_request", "")
	defer marker.Complete()

	var req services.VisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Session().Error("Visit request JSON binding failed", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.sessionService.CreateVisit(req)
	if err != nil {
		h.logger.Session().Error("Visit creation failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create visit"})
		return
	}

	// The handshake carries the consent state so the client knows whether
	// the banner is due without a second round trip.
	consentState, err := h.consentService.Get(result.FingerprintID)
	if err != nil {
		h.logger.Consent().Warn("Consent lookup failed during visit", "error", err.Error(), "fingerprintId", result.FingerprintID)
		consentState = nil
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"sessionId":     result.SessionID,
		"fingerprintId": result.FingerprintID,
		"restored":      result.Restored,
		"hasSubscribed": result.HasSubscribed,
		"consent":       consentState,
	})
}

// GetState handles GET /api/v1/state - session engagement snapshot.
func (h *VisitHandlers) GetState(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	state, exists := h.sessionService.GetState(sessionID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown session"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetSSE handles GET /api/v1/sse - the engagement directive stream.
func (h *VisitHandlers) GetSSE(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_sse_request", "")
	defer marker.Complete()

	sessionID := c.Query("sessionId")
	if sessionID == "" {
		h.logger.SSE().Error("SSE connection request missing session ID")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID required for SSE connection"})
		return
	}

	currentConnections := atomic.LoadInt64(&activeSSEConnections)
	if currentConnections >= maxSSEConnections {
		h.logger.SSE().Warn("SSE connection limit reached", "sessionId", sessionID, "currentConnections", currentConnections)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "SSE connection limit reached. Please try again later."})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Headers", "Cache-Control")

	ch := h.broadcaster.AddClientWithSession(sessionID)

	atomic.AddInt64(&activeSSEConnections, 1)
	defer func() {
		atomic.AddInt64(&activeSSEConnections, -1)
		h.broadcaster.RemoveClientWithSession(ch, sessionID)
	}()

	// Initial confirmation so the client knows the stream is live.
	if _, err := fmt.Fprintf(c.Writer, "data: {\"type\":\"connected\",\"sessionId\":\"%s\",\"timestamp\":\"%s\"}\n\n", sessionID, time.Now().Format(time.RFC3339)); err != nil {
		return
	}
	c.Writer.Flush()

	clientCtx := c.Request.Context()

	h.logger.SSE().Info("SSE connection established",
		"sessionId", sessionID,
		"totalConnections", atomic.LoadInt64(&activeSSEConnections),
		"setupDuration", time.Since(start))
	marker.SetSuccess(true)

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	connectionStart := time.Now()
	for {
		select {
		case <-clientCtx.Done():
			h.logger.SSE().Info("SSE client disconnected", "sessionId", sessionID, "connectionDuration", time.Since(connectionStart))
			return

		case message, ok := <-ch:
			if !ok {
				h.logger.SSE().Info("SSE connection channel closed", "sessionId", sessionID, "connectionDuration", time.Since(connectionStart))
				return
			}
			if _, err := c.Writer.WriteString(message); err != nil {
				h.logger.SSE().Error("SSE write failed", "sessionId", sessionID, "error", err.Error())
				return
			}
			c.Writer.Flush()

		case <-ticker.C:
			heartbeat := fmt.Sprintf("data: {\"type\":\"heartbeat\",\"timestamp\":\"%s\"}\n\n", time.Now().Format(time.RFC3339))
			if _, err := c.Writer.WriteString(heartbeat); err != nil {
				h.logger.SSE().Error("SSE heartbeat failed", "sessionId", sessionID, "error", err.Error())
				return
			}
			c.Writer.Flush()
		}
	}
}
