// Package stores provides concrete cache store implementations
package stores

import (
	"sync"
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/domain/entities/session"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
)

// SessionsStore owns all in-memory engagement state, keyed by session ID.
// Engagement state is ephemeral: it lives for one browser session and is
// evicted by the cleanup worker after its TTL.
type SessionsStore struct {
	sessions map[string]*session.EngagementState

	// shownCounters outlives state eviction for the storage lifetime of the
	// browser session, so a page reload restores the per-session display cap.
	shownCounters map[string]counterEntry

	mu     sync.RWMutex
	logger *logging.ChanneledLogger
}

type counterEntry struct {
	count     int
	expiresAt time.Time
}

// NewSessionsStore creates a new sessions cache store
func NewSessionsStore(logger *logging.ChanneledLogger) *SessionsStore {
	if logger != nil {
		logger.Cache().Info("Initializing sessions cache store")
	}
	return &SessionsStore{
		sessions:      make(map[string]*session.EngagementState),
		shownCounters: make(map[string]counterEntry),
		logger:        logger,
	}
}

// Get retrieves engagement state for a session.
func (ss *SessionsStore) Get(sessionID string) (*session.EngagementState, bool) {
	start := time.Now()
	ss.mu.RLock()
	state, exists := ss.sessions[sessionID]
	ss.mu.RUnlock()

	if ss.logger != nil {
		ss.logger.Cache().Debug("Cache operation", "operation", "get", "type", "session", "sessionId", sessionID, "hit", exists, "duration", time.Since(start))
	}
	return state, exists
}

// Put stores engagement state for a session.
func (ss *SessionsStore) Put(state *session.EngagementState) {
	ss.mu.Lock()
	ss.sessions[state.SessionID] = state
	ss.mu.Unlock()

	if ss.logger != nil {
		ss.logger.Cache().Debug("Cache operation", "operation", "put", "type", "session", "sessionId", state.SessionID)
	}
}

// Count returns the number of live sessions.
func (ss *SessionsStore) Count() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

// SaveShownCounter persists a session's display counter so a reload within
// the same browser session keeps its cap consumption.
func (ss *SessionsStore) SaveShownCounter(sessionID string, count int, ttl time.Duration) {
	ss.mu.Lock()
	ss.shownCounters[sessionID] = counterEntry{count: count, expiresAt: time.Now().Add(ttl)}
	ss.mu.Unlock()
}

// RestoreShownCounter returns the persisted display counter for a session ID,
// or zero when none survives.
func (ss *SessionsStore) RestoreShownCounter(sessionID string) int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	entry, exists := ss.shownCounters[sessionID]
	if !exists || time.Now().After(entry.expiresAt) {
		return 0
	}
	return entry.count
}

// All returns a snapshot of every live engagement state.
func (ss *SessionsStore) All() []*session.EngagementState {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	states := make([]*session.EngagementState, 0, len(ss.sessions))
	for _, state := range ss.sessions {
		states = append(states, state)
	}
	return states
}

// RemoveExpired evicts sessions and counters past their expiry and returns
// the number of sessions removed.
func (ss *SessionsStore) RemoveExpired(now time.Time) int {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	removed := 0
	for id, state := range ss.sessions {
		if state.Expired(now) {
			delete(ss.sessions, id)
			removed++
		}
	}
	for id, entry := range ss.shownCounters {
		if now.After(entry.expiresAt) {
			delete(ss.shownCounters, id)
		}
	}

	if ss.logger != nil && removed > 0 {
		ss.logger.Cache().Info("Evicted expired sessions", "removed", removed, "remaining", len(ss.sessions))
	}
	return removed
}
