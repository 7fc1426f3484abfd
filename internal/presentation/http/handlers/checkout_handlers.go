package handlers

import (
	"errors"
	"net/http"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/application/services"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// CheckoutHandlers serves the booking checkout proxy.
type CheckoutHandlers struct {
	checkoutService *services.CheckoutService
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewCheckoutHandlers creates the checkout handler group.
func NewCheckoutHandlers(checkoutService *services.CheckoutService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *CheckoutHandlers {
	return &CheckoutHandlers{
		checkoutService: checkoutService,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

// PostCheckout handles POST /api/v1/checkout.
func (h *CheckoutHandlers) PostCheckout(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	sessionID := c.GetHeader("X-GoIconicWay-Session-ID")

	result, err := h.checkoutService.Checkout(c.Request.Context(), sessionID, req)
	if err != nil {
		if errors.Is(err, services.ErrCheckoutValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Checkout().Error("Checkout failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
		return
	}

	if result.CheckoutURL == "" {
		c.JSON(result.StatusCode, gin.H{"error": result.ErrorMessage})
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkoutUrl": result.CheckoutURL})
}
