package handlers

import (
	"net/http"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/application/services"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/domain/events"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/performance"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// EngagementHandlers serves the browser signal sink and message lifecycle
// endpoints.
type EngagementHandlers struct {
	engagementService *services.EngagementService
	sessionService    *services.SessionService
	logger            *logging.ChanneledLogger
	perfTracker       *performance.Tracker
}

// NewEngagementHandlers creates the engagement handler group.
func NewEngagementHandlers(engagementService *services.EngagementService, sessionService *services.SessionService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *EngagementHandlers {
	return &EngagementHandlers{
		engagementService: engagementService,
		sessionService:    sessionService,
		logger:            logger,
		perfTracker:       perfTracker,
	}
}

// PostEvent handles POST /api/v1/events - one browser signal.
func (h *EngagementHandlers) PostEvent(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var evt events.Event
	if err := c.ShouldBindJSON(&evt); err != nil {
		h.logger.Engage().Error("Event JSON binding failed", "sessionId", sessionID, "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event format"})
		return
	}

	if err := h.engagementService.HandleEvent(sessionID, evt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accepted": true})
}

// PostDismiss handles POST /api/v1/messages/dismiss.
func (h *EngagementHandlers) PostDismiss(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req struct {
		Kind      string `json:"kind"`
		Permanent bool   `json:"permanent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if req.Permanent {
		h.engagementService.DismissPermanently(sessionID)
	} else {
		h.engagementService.Dismiss(sessionID, req.Kind)
	}
	c.JSON(http.StatusOK, gin.H{"dismissed": true})
}

// PostHelp handles POST /api/v1/messages/help - toggles the section help
// bubble on user request.
func (h *EngagementHandlers) PostHelp(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	h.engagementService.ForceShowHelp(sessionID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetSideChannels handles GET /api/v1/side-channels.
func (h *EngagementHandlers) GetSideChannels(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	flags, exists := h.sessionService.SideChannels(sessionID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown session"})
		return
	}
	c.JSON(http.StatusOK, flags)
}

// PostSideChannel handles POST /api/v1/side-channels - consumes a one-shot
// surface flag.
func (h *EngagementHandlers) PostSideChannel(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req struct {
		Surface string `json:"surface"` // "popup" or "sticky"
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	switch req.Surface {
	case "popup":
		h.sessionService.MarkPopupShown(sessionID)
	case "sticky":
		h.sessionService.MarkStickyClosed(sessionID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown surface"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
