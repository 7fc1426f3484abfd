// Package consent provides the domain entity for cookie consent decisions.
package consent

import "time"

// Flag values are stored as strings to match the serialized cookie format.
const (
	FlagTrue  = "true"
	FlagFalse = "false"
)

// Preferences holds one visitor's consent decision. A stored decision means
// the banner was answered and must not be shown again.
type Preferences struct {
	FingerprintID string    `json:"fingerprintId"`
	Essential     string    `json:"essential"`
	Analytics     string    `json:"analytics"`
	Marketing     string    `json:"marketing"`
	DecidedAt     time.Time `json:"decidedAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// NewPreferences builds a decision record. Essential cookies are always on.
func NewPreferences(fingerprintID string, analytics, marketing bool, now time.Time, retention time.Duration) *Preferences {
	p := &Preferences{
		FingerprintID: fingerprintID,
		Essential:     FlagTrue,
		Analytics:     FlagFalse,
		Marketing:     FlagFalse,
		DecidedAt:     now,
		ExpiresAt:     now.Add(retention),
	}
	if analytics {
		p.Analytics = FlagTrue
	}
	if marketing {
		p.Marketing = FlagTrue
	}
	return p
}

// AnalyticsAllowed reports whether analytics events may be recorded.
func (p *Preferences) AnalyticsAllowed() bool {
	return p.Analytics == FlagTrue
}

// Expired reports whether the decision passed its retention window and the
// banner should be shown again.
func (p *Preferences) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
