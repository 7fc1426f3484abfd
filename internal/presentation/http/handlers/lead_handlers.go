package handlers

import (
	"net/http"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/application/services"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// LeadHandlers serves guide subscriptions and consent decisions.
type LeadHandlers struct {
	leadService    *services.LeadService
	consentService *services.ConsentService
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewLeadHandlers creates the lead handler group.
func NewLeadHandlers(leadService *services.LeadService, consentService *services.ConsentService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *LeadHandlers {
	return &LeadHandlers{
		leadService:    leadService,
		consentService: consentService,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// PostLead handles POST /api/v1/leads.
func (h *LeadHandlers) PostLead(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_lead_request", "")
	defer marker.Complete()

	var req services.LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = c.GetHeader("X-GoIconicWay-Session-ID")
	}

	result, err := h.leadService.Capture(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, result)
}

// GetConsent handles GET /api/v1/consent/:fingerprint.
func (h *LeadHandlers) GetConsent(c *gin.Context) {
	fingerprintID := c.Param("fingerprint")
	if fingerprintID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fingerprint required"})
		return
	}

	decision, err := h.consentService.Get(fingerprintID)
	if err != nil {
		h.logger.Consent().Error("Consent lookup failed", "error", err.Error(), "fingerprintId", fingerprintID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load consent"})
		return
	}
	c.JSON(http.StatusOK, decision)
}

// PostConsent handles POST /api/v1/consent.
func (h *LeadHandlers) PostConsent(c *gin.Context) {
	var req struct {
		FingerprintID string `json:"fingerprintId" binding:"required"`
		Analytics     bool   `json:"analytics"`
		Marketing     bool   `json:"marketing"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.consentService.Decide(req.FingerprintID, req.Analytics, req.Marketing); err != nil {
		h.logger.Consent().Error("Consent store failed", "error", err.Error(), "fingerprintId", req.FingerprintID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store consent"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stored": true})
}
