// Package lead provides the domain entity for captured visitor leads.
package lead

import "time"

// Lead is a visitor who subscribed for the travel guide.
type Lead struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"firstName"`
	Email         string    `json:"email"`
	SessionID     string    `json:"sessionId,omitempty"`
	FingerprintID string    `json:"fingerprintId,omitempty"`
	Source        string    `json:"source,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
