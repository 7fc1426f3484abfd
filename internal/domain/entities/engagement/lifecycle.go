package engagement

// MessagePhase tracks where one message key sits in its lifecycle.
// A key moves Eligible → Shown, and the whole engine moves to a dismissed
// phase when the visitor closes a message; a shown key never returns to
// Eligible within the session.
type MessagePhase int

const (
	PhaseEligible MessagePhase = iota
	PhaseShown
	PhaseDismissedCooldown
	PhaseDismissedPermanent
)

// String returns the phase name for logs and journal entries.
func (p MessagePhase) String() string {
	switch p {
	case PhaseEligible:
		return "eligible"
	case PhaseShown:
		return "shown"
	case PhaseDismissedCooldown:
		return "dismissed-cooldown"
	case PhaseDismissedPermanent:
		return "dismissed-permanent"
	default:
		return "unknown"
	}
}
