package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/performance"
	"github.com/anja687gutierrez-jpg/goiconicway/pkg/config"
)

// CheckoutRequest is a booking handed to the rental platform.
type CheckoutRequest struct {
	VehicleType    string `json:"vehicleType"`
	PickupDate     string `json:"pickupDate"`
	DropoffDate    string `json:"dropoffDate"`
	PickupLocation string `json:"pickupLocation"`
	CustomerEmail  string `json:"customerEmail"`
	Source         string `json:"source,omitempty"`
	Locale         string `json:"locale,omitempty"`
}

// CheckoutResult carries the upstream outcome. On failure, StatusCode and
// ErrorMessage mirror the upstream response so the client sees the platform's
// own error.
type CheckoutResult struct {
	CheckoutURL  string
	StatusCode   int
	ErrorMessage string
}

// ErrCheckoutValidation marks a request rejected before any network call.
var ErrCheckoutValidation = errors.New("invalid checkout request")

// CheckoutService validates bookings and forwards them to the rental
// platform's public checkout API.
type CheckoutService struct {
	httpClient  *http.Client
	upstreamURL string
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
	analytics   *AnalyticsService
}

// NewCheckoutService creates the checkout proxy service.
func NewCheckoutService(logger *logging.ChanneledLogger, perfTracker *performance.Tracker, analytics *AnalyticsService) *CheckoutService {
	return &CheckoutService{
		httpClient:  &http.Client{Timeout: config.CheckoutTimeout},
		upstreamURL: config.CheckoutUpstreamURL,
		logger:      logger,
		perfTracker: perfTracker,
		analytics:   analytics,
	}
}

// Validate rejects malformed bookings before any network traffic.
func (s *CheckoutService) Validate(req CheckoutRequest) error {
	if req.VehicleType == "" {
		return fmt.Errorf("%w: vehicleType is required", ErrCheckoutValidation)
	}
	if req.PickupLocation == "" {
		return fmt.Errorf("%w: pickupLocation is required", ErrCheckoutValidation)
	}
	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		return fmt.Errorf("%w: customerEmail is invalid", ErrCheckoutValidation)
	}

	pickup, err := time.Parse("2006-01-02", req.PickupDate)
	if err != nil {
		return fmt.Errorf("%w: pickupDate must be YYYY-MM-DD", ErrCheckoutValidation)
	}
	dropoff, err := time.Parse("2006-01-02", req.DropoffDate)
	if err != nil {
		return fmt.Errorf("%w: dropoffDate must be YYYY-MM-DD", ErrCheckoutValidation)
	}
	if !dropoff.After(pickup) {
		return fmt.Errorf("%w: dropoffDate must be after pickupDate", ErrCheckoutValidation)
	}
	return nil
}

// Checkout validates and forwards a booking, passing the upstream's checkout
// URL or error through unchanged.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*CheckoutResult, error) {
	marker := s.perfTracker.StartOperation("checkout", sessionID)
	defer marker.Complete()

	if err := s.Validate(req); err != nil {
		marker.SetError(err)
		return nil, err
	}

	if req.Source == "" {
		req.Source = config.BookingSource
	}
	if req.Locale == "" {
		req.Locale = "en"
	}

	s.analytics.RecordEvent(sessionID, "checkout_attempt", req.VehicleType)

	payload, err := json.Marshal(req)
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.upstreamURL, bytes.NewReader(payload))
	if err != nil {
		marker.SetError(err)
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		s.logger.Checkout().Error("Checkout upstream unreachable", "error", err.Error(), "sessionId", sessionID)
		marker.SetError(err)
		return &CheckoutResult{StatusCode: http.StatusBadGateway, ErrorMessage: "Checkout service unavailable"}, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	var parsed struct {
		CheckoutURL string `json:"checkoutUrl"`
		Error       string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		s.logger.Checkout().Error("Checkout upstream returned malformed body", "status", resp.StatusCode, "sessionId", sessionID)
		return &CheckoutResult{StatusCode: http.StatusBadGateway, ErrorMessage: "Checkout failed"}, nil
	}

	if resp.StatusCode != http.StatusOK || parsed.CheckoutURL == "" {
		errorMessage := parsed.Error
		if errorMessage == "" {
			errorMessage = "Checkout failed"
		}
		s.logger.Checkout().Warn("Checkout rejected upstream", "status", resp.StatusCode, "error", errorMessage, "sessionId", sessionID)
		s.analytics.RecordEvent(sessionID, "checkout_failed", req.VehicleType)
		return &CheckoutResult{StatusCode: resp.StatusCode, ErrorMessage: errorMessage}, nil
	}

	s.logger.Checkout().Info("Checkout forwarded", "vehicleType", req.VehicleType, "sessionId", sessionID)
	s.analytics.RecordEvent(sessionID, "checkout_forwarded", req.VehicleType)
	marker.SetSuccess(true)
	return &CheckoutResult{CheckoutURL: parsed.CheckoutURL, StatusCode: http.StatusOK}, nil
}
