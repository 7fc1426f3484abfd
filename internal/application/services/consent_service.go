package services

import (
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/domain/entities/consent"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/persistence/user"
	"github.com/anja687gutierrez-jpg/goiconicway/pkg/config"
)

// ConsentDecision is the client-facing consent payload.
type ConsentDecision struct {
	Essential string `json:"essential"`
	Analytics string `json:"analytics"`
	Marketing string `json:"marketing"`
	ShowBanner bool  `json:"showBanner"`
}

// ConsentService manages cookie consent decisions. The banner is shown
// exactly until a decision is stored; decisions expire after the retention
// window and the banner returns.
type ConsentService struct {
	repo   *user.SQLConsentRepository
	logger *logging.ChanneledLogger
	now    func() time.Time
}

// NewConsentService creates the consent service.
func NewConsentService(repo *user.SQLConsentRepository, logger *logging.ChanneledLogger) *ConsentService {
	return &ConsentService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Get returns the stored decision for a fingerprint, with the banner flag set
// when no valid decision exists.
func (s *ConsentService) Get(fingerprintID string) (*ConsentDecision, error) {
	prefs, err := s.repo.Find(fingerprintID)
	if err != nil {
		return nil, err
	}
	if prefs == nil || prefs.Expired(s.now()) {
		return &ConsentDecision{
			Essential:  consent.FlagTrue,
			Analytics:  consent.FlagFalse,
			Marketing:  consent.FlagFalse,
			ShowBanner: true,
		}, nil
	}
	return &ConsentDecision{
		Essential:  prefs.Essential,
		Analytics:  prefs.Analytics,
		Marketing:  prefs.Marketing,
		ShowBanner: false,
	}, nil
}

// Decide stores a consent decision for a fingerprint.
func (s *ConsentService) Decide(fingerprintID string, analytics, marketing bool) error {
	prefs := consent.NewPreferences(fingerprintID, analytics, marketing, s.now(), config.ConsentRetention)
	if err := s.repo.Upsert(prefs); err != nil {
		return err
	}
	s.logger.Consent().Info("Consent decision stored", "fingerprintId", fingerprintID, "analytics", prefs.Analytics, "marketing", prefs.Marketing)
	return nil
}

// AcceptAll stores a full-consent decision.
func (s *ConsentService) AcceptAll(fingerprintID string) error {
	return s.Decide(fingerprintID, true, true)
}

// DeclineAll stores an essential-only decision.
func (s *ConsentService) DeclineAll(fingerprintID string) error {
	return s.Decide(fingerprintID, false, false)
}

// AnalyticsAllowed reports whether analytics collection is consented for a
// fingerprint. Unknown or expired decisions deny.
func (s *ConsentService) AnalyticsAllowed(fingerprintID string) bool {
	if fingerprintID == "" {
		return false
	}
	prefs, err := s.repo.Find(fingerprintID)
	if err != nil || prefs == nil || prefs.Expired(s.now()) {
		return false
	}
	return prefs.AnalyticsAllowed()
}

// PurgeExpired removes decisions past retention so their banners return.
func (s *ConsentService) PurgeExpired() (int64, error) {
	return s.repo.DeleteExpired(s.now())
}
