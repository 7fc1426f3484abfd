// Package manager provides the cache manager facade over the store layer.
package manager

import (
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/domain/entities/session"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/caching/stores"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
)

// Manager aggregates the in-memory stores behind a single dependency.
type Manager struct {
	sessions *stores.SessionsStore
	journal  *stores.JournalStore
	logger   *logging.ChanneledLogger
}

// NewManager creates the cache manager with all stores initialized.
func NewManager(journalCapacity int, logger *logging.ChanneledLogger) *Manager {
	return &Manager{
		sessions: stores.NewSessionsStore(logger),
		journal:  stores.NewJournalStore(journalCapacity, logger),
		logger:   logger,
	}
}

// GetSession retrieves engagement state for a session ID.
func (m *Manager) GetSession(sessionID string) (*session.EngagementState, bool) {
	return m.sessions.Get(sessionID)
}

// PutSession stores engagement state.
func (m *Manager) PutSession(state *session.EngagementState) {
	m.sessions.Put(state)
}

// SessionCount returns the number of live sessions.
func (m *Manager) SessionCount() int {
	return m.sessions.Count()
}

// SaveShownCounter persists a session's display counter.
func (m *Manager) SaveShownCounter(sessionID string, count int, ttl time.Duration) {
	m.sessions.SaveShownCounter(sessionID, count, ttl)
}

// RestoreShownCounter returns the persisted display counter for a session.
func (m *Manager) RestoreShownCounter(sessionID string) int {
	return m.sessions.RestoreShownCounter(sessionID)
}

// AllSessions returns a snapshot of every live engagement state.
func (m *Manager) AllSessions() []*session.EngagementState {
	return m.sessions.All()
}

// RemoveExpiredSessions evicts sessions past their expiry.
func (m *Manager) RemoveExpiredSessions(now time.Time) int {
	return m.sessions.RemoveExpired(now)
}

// Journal returns the engagement decision journal.
func (m *Manager) Journal() *stores.JournalStore {
	return m.journal
}
