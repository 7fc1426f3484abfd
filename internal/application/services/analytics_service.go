package services

import (
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/caching/manager"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/caching/stores"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/persistence/analytics"
)

// AnalyticsService is the engagement event sink. Every decision lands in the
// in-memory journal for the operator view; durable rows are written only for
// visitors whose consent allows analytics.
type AnalyticsService struct {
	cacheManager *manager.Manager
	eventRepo    *analytics.SQLEventRepository
	consents     *ConsentService
	logger       *logging.ChanneledLogger
}

// NewAnalyticsService creates the analytics sink.
func NewAnalyticsService(cacheManager *manager.Manager, eventRepo *analytics.SQLEventRepository, logger *logging.ChanneledLogger) *AnalyticsService {
	return &AnalyticsService{
		cacheManager: cacheManager,
		eventRepo:    eventRepo,
		logger:       logger,
	}
}

// SetConsentService wires the consent gate. Set once during container
// assembly; without it no durable rows are written.
func (s *AnalyticsService) SetConsentService(consents *ConsentService) {
	s.consents = consents
}

// RecordDecision records an arbiter decision (shown, denied, dismissed).
func (s *AnalyticsService) RecordDecision(sessionID, kind, key, reason string) {
	s.record(stores.JournalEntry{
		Timestamp: time.Now().UTC(),
		SessionID: sessionID,
		Kind:      kind,
		Key:       key,
		Reason:    reason,
	})
}

// RecordAction records a message button click.
func (s *AnalyticsService) RecordAction(sessionID, action, target string) {
	s.record(stores.JournalEntry{
		Timestamp: time.Now().UTC(),
		SessionID: sessionID,
		Kind:      "action",
		Action:    action,
		Target:    target,
	})
}

// RecordEvent records a named event outside the arbiter (lead capture,
// checkout attempts).
func (s *AnalyticsService) RecordEvent(sessionID, kind, key string) {
	s.record(stores.JournalEntry{
		Timestamp: time.Now().UTC(),
		SessionID: sessionID,
		Kind:      kind,
		Key:       key,
	})
}

func (s *AnalyticsService) record(entry stores.JournalEntry) {
	s.cacheManager.Journal().Append(entry)

	if s.eventRepo == nil || s.consents == nil {
		return
	}

	// Durable write happens off the hot path; loss on failure is acceptable.
	// The fingerprint lookup takes the session mutex, which the arbiter still
	// holds when recording a decision, so it stays off the caller's goroutine.
	go func() {
		fingerprintID := s.fingerprintFor(entry.SessionID)
		if !s.consents.AnalyticsAllowed(fingerprintID) {
			return
		}
		err := s.eventRepo.Insert(&analytics.EventRecord{
			SessionID:     entry.SessionID,
			FingerprintID: fingerprintID,
			Kind:          entry.Kind,
			Key:           entry.Key,
			Action:        entry.Action,
			Target:        entry.Target,
			CreatedAt:     entry.Timestamp,
		})
		if err != nil {
			s.logger.System().Warn("Durable analytics write failed", "kind", entry.Kind, "error", err.Error())
		}
	}()
}

func (s *AnalyticsService) fingerprintFor(sessionID string) string {
	if sessionID == "" {
		return ""
	}
	state, exists := s.cacheManager.GetSession(sessionID)
	if !exists {
		return ""
	}
	state.Mu.Lock()
	defer state.Mu.Unlock()
	return state.FingerprintID
}
