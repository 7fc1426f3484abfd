package stores

import (
	"sync"
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
)

// JournalEntry records one engagement decision or analytics event.
type JournalEntry struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"sessionId,omitempty"`
	Kind      string    `json:"kind"` // e.g., "message_shown", "message_denied", "action", "lead_captured"
	Key       string    `json:"key,omitempty"`
	Action    string    `json:"action,omitempty"`
	Target    string    `json:"target,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}

// JournalStore keeps a bounded in-memory ring of recent engagement events for
// the ops activity view. It is not durable storage.
type JournalStore struct {
	entries []JournalEntry
	next    int
	size    int
	mu      sync.RWMutex
	logger  *logging.ChanneledLogger
}

// NewJournalStore creates a journal retaining up to capacity entries.
func NewJournalStore(capacity int, logger *logging.ChanneledLogger) *JournalStore {
	if capacity <= 0 {
		capacity = 500
	}
	return &JournalStore{
		entries: make([]JournalEntry, capacity),
		logger:  logger,
	}
}

// Append records a journal entry, overwriting the oldest when full.
func (js *JournalStore) Append(entry JournalEntry) {
	js.mu.Lock()
	js.entries[js.next] = entry
	js.next = (js.next + 1) % len(js.entries)
	if js.size < len(js.entries) {
		js.size++
	}
	js.mu.Unlock()
}

// Recent returns up to limit entries, newest last.
func (js *JournalStore) Recent(limit int) []JournalEntry {
	js.mu.RLock()
	defer js.mu.RUnlock()

	if limit <= 0 || limit > js.size {
		limit = js.size
	}
	out := make([]JournalEntry, 0, limit)
	start := js.next - limit
	if start < 0 {
		start += len(js.entries)
	}
	for i := 0; i < limit; i++ {
		out = append(out, js.entries[(start+i)%len(js.entries)])
	}
	return out
}

// CountByKind tallies recorded entries per kind.
func (js *JournalStore) CountByKind() map[string]int {
	js.mu.RLock()
	defer js.mu.RUnlock()

	counts := make(map[string]int)
	start := js.next - js.size
	if start < 0 {
		start += len(js.entries)
	}
	for i := 0; i < js.size; i++ {
		counts[js.entries[(start+i)%len(js.entries)].Kind]++
	}
	return counts
}
