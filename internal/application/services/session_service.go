package services

import (
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/domain/entities/session"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/caching/manager"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/performance"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/security"
	"github.com/anja687gutierrez-jpg/goiconicway/pkg/config"
)

// SessionService handles visit creation and session state lifecycle.
type SessionService struct {
	cacheManager *manager.Manager
	engagement   *EngagementService
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
	now          func() time.Time
}

// NewSessionService creates a new session service.
func NewSessionService(cacheManager *manager.Manager, engagement *EngagementService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SessionService {
	return &SessionService{
		cacheManager: cacheManager,
		engagement:   engagement,
		logger:       logger,
		perfTracker:  perfTracker,
		now:          time.Now,
	}
}

// VisitRequest represents the structure for visit creation requests.
type VisitRequest struct {
	SessionID       *string `json:"sessionId,omitempty"`
	FingerprintID   *string `json:"fingerprintId,omitempty"`
	SubscriberToken *string `json:"subscriberToken,omitempty"`
}

// VisitResult holds the result of visit creation.
type VisitResult struct {
	SessionID     string `json:"sessionId"`
	FingerprintID string `json:"fingerprintId"`
	Restored      bool   `json:"restored"`
	HasSubscribed bool   `json:"hasSubscribed"`
}

// CreateVisit establishes or resumes a session. A reload within the same
// browser session presents the old session ID; its display counter survives
// eviction so the per-session cap cannot be reset by refreshing.
func (s *SessionService) CreateVisit(req VisitRequest) (*VisitResult, error) {
	marker := s.perfTracker.StartOperation("create_visit", "")
	defer marker.Complete()

	now := s.now()

	if req.SessionID != nil && *req.SessionID != "" {
		if state, exists := s.cacheManager.GetSession(*req.SessionID); exists {
			state.Mu.Lock()
			state.Touch(now, config.SessionTTL)
			result := &VisitResult{
				SessionID:     state.SessionID,
				FingerprintID: state.FingerprintID,
				Restored:      true,
				HasSubscribed: state.HasSubscribed,
			}
			state.Mu.Unlock()

			s.logger.Session().Debug("Visit resumed", "sessionId", result.SessionID)
			marker.SetSuccess(true)
			return result, nil
		}
	}

	sessionID := security.GenerateULID()
	fingerprintID := security.GenerateULID()
	if req.FingerprintID != nil && *req.FingerprintID != "" {
		fingerprintID = *req.FingerprintID
	}

	state := session.NewEngagementState(sessionID, fingerprintID, now, config.SessionTTL)

	// A presented old session ID means this is a reload; restore its
	// consumed display slots.
	if req.SessionID != nil && *req.SessionID != "" {
		if restored := s.cacheManager.RestoreShownCounter(*req.SessionID); restored > 0 {
			state.TotalShown = restored
			s.cacheManager.SaveShownCounter(sessionID, restored, config.SessionTTL)
			s.logger.Session().Debug("Display counter restored", "sessionId", sessionID, "totalShown", restored)
		}
	}

	if req.SubscriberToken != nil && *req.SubscriberToken != "" {
		if claims, err := security.ValidateJWT(*req.SubscriberToken, config.JWTSecret); err == nil {
			if role, _ := claims["role"].(string); role == "subscriber" {
				state.HasSubscribed = true
				if fp, _ := claims["fingerprint"].(string); fp != "" {
					state.FingerprintID = fp
				}
			}
		} else {
			s.logger.Session().Debug("Subscriber token rejected", "error", err.Error())
		}
	}

	s.cacheManager.PutSession(state)
	s.engagement.StartSession(sessionID)

	s.logger.Session().Info("Visit created", "sessionId", sessionID, "fingerprintId", state.FingerprintID, "hasSubscribed", state.HasSubscribed)
	marker.SetSuccess(true)

	return &VisitResult{
		SessionID:     sessionID,
		FingerprintID: state.FingerprintID,
		HasSubscribed: state.HasSubscribed,
	}, nil
}

// SideChannels reports the one-shot flags for the exit popup and sticky bar.
// A subscribed visitor gets neither surface.
func (s *SessionService) SideChannels(sessionID string) (map[string]bool, bool) {
	state, exists := s.cacheManager.GetSession(sessionID)
	if !exists {
		return nil, false
	}

	state.Mu.Lock()
	defer state.Mu.Unlock()

	return map[string]bool{
		"popupEligible":  !state.HasSubscribed && !state.PopupShown,
		"stickyEligible": !state.HasSubscribed && !state.StickyBarClosed,
		"hasSubscribed":  state.HasSubscribed,
	}, true
}

// MarkPopupShown consumes the exit popup's one-shot flag.
func (s *SessionService) MarkPopupShown(sessionID string) {
	if state, exists := s.cacheManager.GetSession(sessionID); exists {
		state.Mu.Lock()
		state.PopupShown = true
		state.Mu.Unlock()
		s.logger.Session().Debug("Exit popup consumed", "sessionId", sessionID)
	}
}

// MarkStickyClosed consumes the sticky bar's one-shot flag.
func (s *SessionService) MarkStickyClosed(sessionID string) {
	if state, exists := s.cacheManager.GetSession(sessionID); exists {
		state.Mu.Lock()
		state.StickyBarClosed = true
		state.Mu.Unlock()
		s.logger.Session().Debug("Sticky bar closed", "sessionId", sessionID)
	}
}

// GetState returns a read snapshot of a session's engagement signals.
func (s *SessionService) GetState(sessionID string) (map[string]any, bool) {
	state, exists := s.cacheManager.GetSession(sessionID)
	if !exists {
		return nil, false
	}

	state.Mu.Lock()
	defer state.Mu.Unlock()

	sections := make([]string, 0, len(state.SectionsViewed))
	for section := range state.SectionsViewed {
		sections = append(sections, section)
	}

	return map[string]any{
		"sessionId":        state.SessionID,
		"currentSection":   state.CurrentSection,
		"sectionsViewed":   sections,
		"totalShown":       state.TotalShown,
		"activeMessageKey": state.ActiveMessageKey,
		"dismissed":        state.DismissedPermanently,
		"suppressUntil":    state.SuppressUntil,
		"hasSubscribed":    state.HasSubscribed,
	}, true
}
