// Package services provides application-level orchestration services
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/domain/entities/engagement"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/domain/entities/session"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/domain/events"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/caching/manager"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/messaging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/performance"
	"github.com/anja687gutierrez-jpg/goiconicway/pkg/config"
)

// Dismiss kinds reported by the client. Declining a message suppresses
// longer than just closing it.
const (
	DismissDecline = "decline"
	DismissClose   = "close"
	DismissNeutral = "neutral"
)

// EngagementService is the arbiter for proactive messages. It owns every
// admission decision, runs the timed triggers, and pushes display directives
// to the session's SSE clients. All state transitions for one session are
// serialized through that session's mutex, so two triggers becoming eligible
// at the same instant resolve in arrival order at the gate.
type EngagementService struct {
	cacheManager *manager.Manager
	broadcaster  messaging.Broadcaster
	catalog      engagement.Catalog
	analytics    *AnalyticsService
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker

	// Injectable clock and scheduler for deterministic tests.
	now      func() time.Time
	schedule func(time.Duration, func())
}

// NewEngagementService creates the engagement arbiter.
func NewEngagementService(cacheManager *manager.Manager, broadcaster messaging.Broadcaster, analytics *AnalyticsService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *EngagementService {
	return &EngagementService{
		cacheManager: cacheManager,
		broadcaster:  broadcaster,
		catalog:      engagement.DefaultCatalog(),
		analytics:    analytics,
		logger:       logger,
		perfTracker:  perfTracker,
		now:          time.Now,
		schedule: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// StartSession arms the welcome trigger for a fresh session.
func (s *EngagementService) StartSession(sessionID string) {
	s.schedule(config.WelcomeDelay, func() {
		s.TriggerWelcome(sessionID)
	})
	s.logger.Engage().Debug("Welcome trigger armed", "sessionId", sessionID, "delay", config.WelcomeDelay)
}

// TriggerWelcome fires the welcome message if the visitor is still near the
// top of the page (at most the landing section viewed) and nothing suppressed
// proactive messaging in the meantime.
func (s *EngagementService) TriggerWelcome(sessionID string) {
	state, exists := s.cacheManager.GetSession(sessionID)
	if !exists {
		return
	}

	state.Mu.Lock()
	defer state.Mu.Unlock()

	if state.DismissedPermanently || len(state.SectionsViewed) > 1 {
		s.logger.Engage().Debug("Welcome trigger skipped", "sessionId", sessionID, "sectionsViewed", len(state.SectionsViewed))
		return
	}
	s.tryShowLocked(state, engagement.KeyWelcome, false)
}

// HandleEvent routes one browser signal into the arbiter.
func (s *EngagementService) HandleEvent(sessionID string, evt events.Event) error {
	marker := s.perfTracker.StartOperation("engagement_event", sessionID)
	defer marker.Complete()

	state, exists := s.cacheManager.GetSession(sessionID)
	if !exists {
		marker.SetError(fmt.Errorf("unknown session"))
		return fmt.Errorf("unknown session %s", sessionID)
	}

	now := s.now()

	switch evt.Type {
	case events.TypeActivity:
		state.Mu.Lock()
		state.RecordActivity(now)
		state.Touch(now, config.SessionTTL)
		state.Mu.Unlock()

	case events.TypeSectionChanged:
		s.handleSectionChanged(state, evt.Section, now)

	case events.TypePointerExitedTop:
		state.Mu.Lock()
		state.RecordActivity(now)
		// Exit intent skips the cooldown window but honors every other
		// admission condition.
		s.tryShowLocked(state, engagement.KeyExitIntent, true)
		state.Mu.Unlock()

	case events.TypeAction:
		s.HandleAction(sessionID, evt.Action, evt.Target)

	default:
		marker.SetError(fmt.Errorf("unknown event type"))
		return fmt.Errorf("unknown event type %q", evt.Type)
	}

	marker.SetSuccess(true)
	return nil
}

// handleSectionChanged records the section view and arms the delayed
// section-arrival trigger. Novelty against the last-dismiss snapshot is
// judged now to avoid arming pointless timers; both the visitor still being
// in the section and the section still being new are re-checked when the
// timer fires.
func (s *EngagementService) handleSectionChanged(state *session.EngagementState, section string, now time.Time) {
	if section == "" {
		return
	}

	state.Mu.Lock()
	changed := state.ViewSection(section, now)
	isNew := state.IsSectionNew(section)
	sessionID := state.SessionID
	state.Mu.Unlock()

	if !changed {
		return
	}
	if _, hasMessage := s.catalog.Get(section); !hasMessage || !isNew {
		return
	}

	s.schedule(config.SectionTriggerDelay, func() {
		s.TriggerSectionArrival(sessionID, section)
	})
	s.logger.Engage().Debug("Section trigger armed", "sessionId", sessionID, "section", section, "delay", config.SectionTriggerDelay)
}

// TriggerSectionArrival fires a section message when the dwell delay elapses,
// provided the visitor still lingers in that section and a dismissal during
// the dwell did not mark it as already seen.
func (s *EngagementService) TriggerSectionArrival(sessionID, section string) {
	state, exists := s.cacheManager.GetSession(sessionID)
	if !exists {
		return
	}

	state.Mu.Lock()
	defer state.Mu.Unlock()

	if state.CurrentSection != section {
		s.logger.Engage().Debug("Section trigger stale", "sessionId", sessionID, "section", section, "currentSection", state.CurrentSection)
		return
	}
	if !state.IsSectionNew(section) {
		s.logger.Engage().Debug("Section trigger suppressed, section seen at last dismissal", "sessionId", sessionID, "section", section)
		return
	}
	s.tryShowLocked(state, section, false)
}

// TryShow runs the admission gate for a message key and displays it on
// success. It returns whether the message was admitted and the denial reason
// otherwise.
func (s *EngagementService) TryShow(sessionID, key string, exemptCooldown bool) (bool, string) {
	state, exists := s.cacheManager.GetSession(sessionID)
	if !exists {
		return false, session.DenyUnknown
	}

	state.Mu.Lock()
	defer state.Mu.Unlock()
	return s.tryShowLocked(state, key, exemptCooldown)
}

// tryShowLocked is the single display path for proactive messages. Caller
// holds the session mutex.
func (s *EngagementService) tryShowLocked(state *session.EngagementState, key string, exemptCooldown bool) (bool, string) {
	def, ok := s.catalog.Get(key)
	if !ok {
		return false, session.DenyUnknown
	}

	now := s.now()
	admitted, reason := state.Admit(key, now, config.MaxMessagesPerSession, exemptCooldown)
	if !admitted {
		s.logger.Engage().Debug("Message denied", "sessionId", state.SessionID, "key", key, "reason", reason)
		s.analytics.RecordDecision(state.SessionID, "message_denied", key, reason)
		return false, reason
	}

	state.MarkShown(key)
	s.cacheManager.SaveShownCounter(state.SessionID, state.TotalShown, config.SessionTTL)
	s.broadcaster.BroadcastShowMessage(state.SessionID, &def)

	s.logger.Engage().Info("Message shown", "sessionId", state.SessionID, "key", key, "totalShown", state.TotalShown)
	s.analytics.RecordDecision(state.SessionID, "message_shown", key, "")
	return true, session.DenyNone
}

// Dismiss hides the active message with the cooldown implied by how the
// visitor dismissed it.
func (s *EngagementService) Dismiss(sessionID, kind string) {
	cooldown := time.Duration(0)
	switch kind {
	case DismissDecline:
		cooldown = config.DeclineCooldown
	case DismissClose:
		cooldown = config.CloseCooldown
	}

	state, exists := s.cacheManager.GetSession(sessionID)
	if !exists {
		return
	}

	state.Mu.Lock()
	key := state.ActiveMessageKey
	state.Dismiss(s.now(), cooldown)
	state.Mu.Unlock()

	if key != "" {
		s.broadcaster.BroadcastHideMessage(sessionID, key)
		s.logger.Engage().Info("Message dismissed", "sessionId", sessionID, "key", key, "kind", kind, "cooldown", cooldown)
		s.analytics.RecordDecision(sessionID, "message_dismissed", key, kind)
	}
}

// DismissPermanently ends all proactive messaging for the session.
func (s *EngagementService) DismissPermanently(sessionID string) {
	state, exists := s.cacheManager.GetSession(sessionID)
	if !exists {
		return
	}

	state.Mu.Lock()
	key := state.ActiveMessageKey
	state.DismissPermanently()
	state.Mu.Unlock()

	if key != "" {
		s.broadcaster.BroadcastHideMessage(sessionID, key)
	}
	s.logger.Engage().Info("Proactive messaging disabled for session", "sessionId", sessionID)
	s.analytics.RecordDecision(sessionID, "messaging_disabled", key, "")
}

// ForceShowHelp toggles the user-initiated help message for the visitor's
// current section. It bypasses the admission gate entirely: help is
// user-requested, consumes no display slot, and records no shown phase. If a
// message is already on screen it is closed instead, with no cooldown.
func (s *EngagementService) ForceShowHelp(sessionID string) {
	state, exists := s.cacheManager.GetSession(sessionID)
	if !exists {
		return
	}

	state.Mu.Lock()
	if state.MessageVisible() {
		key := state.ActiveMessageKey
		state.Dismiss(s.now(), 0)
		state.Mu.Unlock()
		s.broadcaster.BroadcastHideMessage(sessionID, key)
		return
	}

	key := engagement.HelpKey(state.CurrentSection)
	def, ok := s.catalog.Get(key)
	if !ok {
		key = engagement.HelpKey("home")
		def, ok = s.catalog.Get(key)
	}
	if ok {
		state.ActiveMessageKey = key
	}
	state.Mu.Unlock()

	if !ok {
		return
	}
	s.broadcaster.BroadcastShowMessage(sessionID, &def)
	s.logger.Engage().Info("Help shown", "sessionId", sessionID, "key", key)
	s.analytics.RecordDecision(sessionID, "help_shown", key, "")
}

// ShowGuideDelivery pushes the guide-ready message after a successful lead
// capture. Like help, it is a direct response to a visitor action and
// bypasses the admission gate.
func (s *EngagementService) ShowGuideDelivery(sessionID string) {
	state, exists := s.cacheManager.GetSession(sessionID)
	if !exists {
		return
	}

	def, ok := s.catalog.Get(engagement.KeyPdfDelivery)
	if !ok {
		return
	}

	state.Mu.Lock()
	state.ActiveMessageKey = engagement.KeyPdfDelivery
	state.Mu.Unlock()

	s.broadcaster.BroadcastShowMessage(sessionID, &def)
	s.analytics.RecordDecision(sessionID, "guide_delivery_shown", engagement.KeyPdfDelivery, "")
}

// HandleAction applies a message button click: every action closes the
// bubble, and only an explicit decline starts the long cooldown.
func (s *EngagementService) HandleAction(sessionID, action, target string) {
	switch engagement.ActionKind(action) {
	case engagement.ActionDismiss:
		s.Dismiss(sessionID, DismissDecline)
	case engagement.ActionNavigate, engagement.ActionContact, engagement.ActionDownload:
		s.Dismiss(sessionID, DismissNeutral)
	default:
		s.Dismiss(sessionID, DismissNeutral)
	}
	s.analytics.RecordAction(sessionID, action, target)
}

// StartInactivityMonitor runs the idle sweep until the context is cancelled.
// A session idle past the threshold gets the inactivity nudge, once.
func (s *EngagementService) StartInactivityMonitor(ctx context.Context) {
	ticker := time.NewTicker(config.InactivityCheckInterval)
	defer ticker.Stop()

	s.logger.Engage().Info("Inactivity monitor started", "threshold", config.InactivityThreshold, "interval", config.InactivityCheckInterval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Engage().Info("Inactivity monitor stopped")
			return
		case <-ticker.C:
			s.SweepInactive()
		}
	}
}

// SweepInactive runs one pass of the inactivity check over all sessions.
func (s *EngagementService) SweepInactive() {
	now := s.now()
	for _, state := range s.cacheManager.AllSessions() {
		state.Mu.Lock()
		idle := now.Sub(state.LastActivityAt)
		if idle > config.InactivityThreshold && !state.HasShown(engagement.KeyInactive) {
			s.tryShowLocked(state, engagement.KeyInactive, false)
		}
		state.Mu.Unlock()
	}
}

// Catalog exposes the message catalog for the presentation layer.
func (s *EngagementService) Catalog() engagement.Catalog {
	return s.catalog
}
