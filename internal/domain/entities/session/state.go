// Package session provides domain entities for visit and engagement state
// management. It defines the structures tracking one browser session's
// activity signals, shown-message bookkeeping, and suppression windows.
package session

import (
	"sync"
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/domain/entities/engagement"
)

// Deny reasons reported by the admission check.
const (
	DenyNone      = ""
	DenyDismissed = "dismissed-permanently"
	DenyShown     = "already-shown"
	DenyCooldown  = "cooldown-active"
	DenyCap       = "session-cap-reached"
	DenyVisible   = "message-visible"
	DenyUnknown   = "unknown-key"
)

// EngagementState holds all engagement signals and bookkeeping for one
// session. Mutation happens under Mu; the arbiter serializes every
// admission check and state transition through it.
type EngagementState struct {
	SessionID     string `json:"sessionId"`
	FingerprintID string `json:"fingerprintId"`

	SessionStart   time.Time `json:"sessionStart"`
	LastActivityAt time.Time `json:"lastActivityAt"`

	SectionsViewed            map[string]bool `json:"sectionsViewed"`
	SectionsSeenAtLastDismiss map[string]bool `json:"sectionsSeenAtLastDismiss"`
	CurrentSection            string          `json:"currentSection"`

	Phases               map[string]engagement.MessagePhase `json:"phases"`
	DismissedPermanently bool                               `json:"dismissedPermanently"`
	SuppressUntil        time.Time                          `json:"suppressUntil"`
	TotalShown           int                                `json:"totalShown"`
	ActiveMessageKey     string                             `json:"activeMessageKey"`

	// Side-channel one-shot flags
	PopupShown      bool `json:"popupShown"`
	StickyBarClosed bool `json:"stickyBarClosed"`
	HasSubscribed   bool `json:"hasSubscribed"`

	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`

	Mu sync.Mutex `json:"-"`
}

// NewEngagementState creates engagement state for a fresh session.
func NewEngagementState(sessionID, fingerprintID string, now time.Time, ttl time.Duration) *EngagementState {
	return &EngagementState{
		SessionID:                 sessionID,
		FingerprintID:             fingerprintID,
		SessionStart:              now,
		LastActivityAt:            now,
		SectionsViewed:            map[string]bool{"home": true},
		SectionsSeenAtLastDismiss: make(map[string]bool),
		CurrentSection:            "home",
		Phases:                    make(map[string]engagement.MessagePhase),
		CreatedAt:                 now,
		ExpiresAt:                 now.Add(ttl),
	}
}

// RecordActivity updates the last-interaction timestamp.
func (s *EngagementState) RecordActivity(now time.Time) {
	s.LastActivityAt = now
}

// ViewSection records the viewport entering a section. It returns true when
// the current section actually changed.
func (s *EngagementState) ViewSection(section string, now time.Time) bool {
	s.LastActivityAt = now
	if s.CurrentSection == section {
		return false
	}
	s.CurrentSection = section
	s.SectionsViewed[section] = true
	return true
}

// IsSectionNew reports whether a section was not yet seen at the time of the
// last dismissal-with-cooldown. Sections already on screen when the visitor
// dismissed a message must not immediately re-trigger.
func (s *EngagementState) IsSectionNew(section string) bool {
	return !s.SectionsSeenAtLastDismiss[section]
}

// Phase returns the lifecycle phase for a message key.
func (s *EngagementState) Phase(key string) engagement.MessagePhase {
	return s.Phases[key]
}

// HasShown reports whether a message key already fired this session.
func (s *EngagementState) HasShown(key string) bool {
	return s.Phases[key] != engagement.PhaseEligible
}

// MessageVisible reports whether a message is currently on screen.
func (s *EngagementState) MessageVisible() bool {
	return s.ActiveMessageKey != ""
}

// Admit evaluates the five-condition admission gate for a proactive message.
// exemptCooldown skips condition 3 (exit-intent policy). The returned reason
// names the first failing condition, or DenyNone on admission.
func (s *EngagementState) Admit(key string, now time.Time, maxShown int, exemptCooldown bool) (bool, string) {
	if s.DismissedPermanently {
		return false, DenyDismissed
	}
	if s.HasShown(key) {
		return false, DenyShown
	}
	if !exemptCooldown && now.Before(s.SuppressUntil) {
		return false, DenyCooldown
	}
	if s.TotalShown >= maxShown {
		return false, DenyCap
	}
	if s.MessageVisible() {
		return false, DenyVisible
	}
	return true, DenyNone
}

// MarkShown transitions a message key to Shown and consumes one slot of the
// per-session cap. Caller must have passed Admit.
func (s *EngagementState) MarkShown(key string) {
	s.Phases[key] = engagement.PhaseShown
	s.TotalShown++
	s.ActiveMessageKey = key
}

// Dismiss hides the active message. A positive cooldown advances the
// suppression window (forward only, never backward) and snapshots the
// sections viewed so far.
func (s *EngagementState) Dismiss(now time.Time, cooldown time.Duration) {
	if s.ActiveMessageKey != "" {
		if cooldown > 0 {
			s.Phases[s.ActiveMessageKey] = engagement.PhaseDismissedCooldown
		}
		s.ActiveMessageKey = ""
	}
	if cooldown > 0 {
		until := now.Add(cooldown)
		if until.After(s.SuppressUntil) {
			s.SuppressUntil = until
		}
		s.SectionsSeenAtLastDismiss = make(map[string]bool, len(s.SectionsViewed))
		for section := range s.SectionsViewed {
			s.SectionsSeenAtLastDismiss[section] = true
		}
	}
}

// DismissPermanently ends all proactive messaging for the session.
func (s *EngagementState) DismissPermanently() {
	if s.ActiveMessageKey != "" {
		s.Phases[s.ActiveMessageKey] = engagement.PhaseDismissedPermanent
		s.ActiveMessageKey = ""
	}
	s.DismissedPermanently = true
}

// Touch extends the session expiry.
func (s *EngagementState) Touch(now time.Time, ttl time.Duration) {
	s.ExpiresAt = now.Add(ttl)
}

// Expired reports whether the session has passed its expiry.
func (s *EngagementState) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
