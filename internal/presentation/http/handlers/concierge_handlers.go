package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/application/services"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// ConciergeHandlers serves the AI concierge proxy and guide download.
type ConciergeHandlers struct {
	conciergeService *services.ConciergeService
	logger           *logging.ChanneledLogger
	perfTracker      *performance.Tracker
}

// NewConciergeHandlers creates the concierge handler group.
func NewConciergeHandlers(conciergeService *services.ConciergeService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ConciergeHandlers {
	return &ConciergeHandlers{
		conciergeService: conciergeService,
		logger:           logger,
		perfTracker:      perfTracker,
	}
}

// PostConcierge handles POST /api/v1/concierge.
func (h *ConciergeHandlers) PostConcierge(c *gin.Context) {
	var req services.ConciergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Invalid message",
			"error_de": "Ungültige Nachricht",
		})
		return
	}

	reply, err := h.conciergeService.Ask(c.Request.Context(), c.ClientIP(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidMessage):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    "Invalid message",
				"error_de": "Ungültige Nachricht",
			})
		case errors.Is(err, services.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":    "Rate limit exceeded. Please try again later.",
				"error_de": "Anfragelimit erreicht. Bitte versuchen Sie es später erneut.",
			})
		case errors.Is(err, services.ErrUpstreamDown):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":    "AI service temporarily unavailable",
				"error_de": "KI-Service vorübergehend nicht verfügbar",
			})
		default:
			h.logger.Concierge().Error("Concierge request failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":    "Internal server error",
				"error_de": "Interner Serverfehler",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// GetGuide handles GET /api/v1/guide - rate-limited redirect to the guide PDF.
func (h *ConciergeHandlers) GetGuide(c *gin.Context) {
	url, err := h.conciergeService.GuideURL(c.Request.Context(), c.ClientIP())
	if err != nil {
		if errors.Is(err, services.ErrGuideLimitExceeded) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":    "Download limit reached. Please try again tomorrow.",
				"error_de": "Download-Limit erreicht. Bitte versuchen Sie es morgen erneut.",
			})
			return
		}
		h.logger.Concierge().Error("Guide download failed", "error", err.Error())
		c.String(http.StatusInternalServerError, "Error downloading guide")
		return
	}

	c.Redirect(http.StatusFound, url)
}

// GetHealth handles GET /api/v1/health.
func (h *ConciergeHandlers) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UnixMilli(),
	})
}
