package services

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/domain/entities/lead"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/caching/manager"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/email"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/persistence/user"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/security"
	"github.com/anja687gutierrez-jpg/goiconicway/pkg/config"
)

// LeadRequest is a guide subscription submission.
type LeadRequest struct {
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
	SessionID string `json:"sessionId,omitempty"`
}

// LeadResult reports the capture outcome. Subscribed is true even when
// persistence or delivery failed; the visitor must never be re-prompted
// because the backend had a bad moment.
type LeadResult struct {
	Subscribed bool   `json:"subscribed"`
	Token      string `json:"token,omitempty"`
	LeadID     string `json:"leadId,omitempty"`
}

// LeadService captures guide subscriptions: persist the lead, mark the
// session subscribed, send the guide email, and mint a subscriber token.
type LeadService struct {
	repo         *user.SQLLeadRepository
	cacheManager *manager.Manager
	emailService email.Service
	engagement   *EngagementService
	analytics    *AnalyticsService
	logger       *logging.ChanneledLogger
	now          func() time.Time
}

// NewLeadService creates the lead capture service. emailService may be nil
// when no delivery key is configured; capture still succeeds.
func NewLeadService(repo *user.SQLLeadRepository, cacheManager *manager.Manager, emailService email.Service, engagement *EngagementService, analytics *AnalyticsService, logger *logging.ChanneledLogger) *LeadService {
	return &LeadService{
		repo:         repo,
		cacheManager: cacheManager,
		emailService: emailService,
		engagement:   engagement,
		analytics:    analytics,
		logger:       logger,
		now:          time.Now,
	}
}

// Capture processes one subscription. Persistence and email delivery are
// best effort: the visitor is marked subscribed regardless, matching the
// optimistic form behavior on the site.
func (s *LeadService) Capture(req LeadRequest) (*LeadResult, error) {
	firstName := strings.TrimSpace(req.FirstName)
	emailAddr := strings.TrimSpace(req.Email)
	if firstName == "" {
		return nil, fmt.Errorf("firstName is required")
	}
	if _, err := mail.ParseAddress(emailAddr); err != nil {
		return nil, fmt.Errorf("email is invalid")
	}

	fingerprintID := s.markSubscribed(req.SessionID)

	l := &lead.Lead{
		ID:            security.GenerateULID(),
		FirstName:     firstName,
		Email:         emailAddr,
		SessionID:     req.SessionID,
		FingerprintID: fingerprintID,
		Source:        config.BookingSource,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.repo.Create(l); err != nil {
		s.logger.Lead().Error("Lead persistence failed, continuing optimistically", "error", err.Error(), "email", emailAddr)
	} else {
		s.logger.Lead().Info("Lead captured", "leadId", l.ID, "sessionId", req.SessionID)
	}
	s.analytics.RecordEvent(req.SessionID, "lead_captured", l.ID)

	if s.emailService != nil && config.GuideURL != "" {
		go func() {
			if err := s.emailService.SendGuideDeliveryEmail(emailAddr, firstName, config.GuideURL); err != nil {
				s.logger.Lead().Warn("Guide delivery email failed", "error", err.Error(), "leadId", l.ID)
			}
		}()
	}

	if req.SessionID != "" {
		s.engagement.ShowGuideDelivery(req.SessionID)
	}

	result := &LeadResult{Subscribed: true, LeadID: l.ID}
	if config.JWTSecret != "" {
		token, err := security.GenerateSubscriberToken(l.ID, fingerprintID, emailAddr, config.JWTSecret)
		if err != nil {
			s.logger.Lead().Warn("Subscriber token mint failed", "error", err.Error(), "leadId", l.ID)
		} else {
			result.Token = token
		}
	}
	return result, nil
}

// markSubscribed flips the session's subscription flag so the exit popup and
// sticky bar never show again, and returns the session's fingerprint.
func (s *LeadService) markSubscribed(sessionID string) string {
	if sessionID == "" {
		return ""
	}
	state, exists := s.cacheManager.GetSession(sessionID)
	if !exists {
		return ""
	}
	state.Mu.Lock()
	defer state.Mu.Unlock()
	state.HasSubscribed = true
	return state.FingerprintID
}
