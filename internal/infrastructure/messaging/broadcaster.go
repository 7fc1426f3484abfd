// Package messaging provides the concrete implementation of the SSE broadcaster.
package messaging

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/domain/entities/engagement"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
)

// SSEBroadcaster manages session-specific SSE connections. Engagement
// directives (show/hide) for a session reach every tab that session has open.
type SSEBroadcaster struct {
	sessions map[string][]chan string // sessionId -> []channels
	mu       sync.Mutex
	logger   *logging.ChanneledLogger
}

var (
	globalBroadcaster *SSEBroadcaster
	once              sync.Once
)

// NewSSEBroadcaster creates the singleton SSEBroadcaster instance.
func NewSSEBroadcaster(logger *logging.ChanneledLogger) *SSEBroadcaster {
	once.Do(func() {
		globalBroadcaster = &SSEBroadcaster{
			sessions: make(map[string][]chan string),
			logger:   logger,
		}
	})
	return globalBroadcaster
}

// AddClientWithSession registers a new SSE client scoped to a session.
func (b *SSEBroadcaster) AddClientWithSession(sessionID string) chan string {
	ch := make(chan string, 10)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.sessions[sessionID] = append(b.sessions[sessionID], ch)

	b.logger.SSE().Debug("SSE client registered", "sessionId", sessionID, "connections", len(b.sessions[sessionID]))
	return ch
}

// RemoveClientWithSession removes an SSE client from its session.
func (b *SSEBroadcaster) RemoveClientWithSession(ch chan string, sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sessionClients, exists := b.sessions[sessionID]; exists {
		newClients := make([]chan string, 0, len(sessionClients)-1)
		for _, client := range sessionClients {
			if client != ch {
				newClients = append(newClients, client)
			}
		}
		b.sessions[sessionID] = newClients

		if len(b.sessions[sessionID]) == 0 {
			delete(b.sessions, sessionID)
		}
	}
	b.logger.SSE().Debug("SSE client unregistered", "sessionId", sessionID)
}

// GetSessionConnectionCount returns the connection count for a session.
func (b *SSEBroadcaster) GetSessionConnectionCount(sessionID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.sessions[sessionID])
}

// BroadcastShowMessage pushes a message_show directive carrying the full
// message definition so the client renders without a second round trip.
func (b *SSEBroadcaster) BroadcastShowMessage(sessionID string, def *engagement.MessageDefinition) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.SSE().Error("Panic recovered in BroadcastShowMessage", "error", r, "sessionId", sessionID)
		}
	}()

	defJSON, _ := json.Marshal(def)
	message := fmt.Sprintf("event: message_show\ndata: %s\n\n", defJSON)
	b.send(sessionID, message)
}

// BroadcastHideMessage pushes a message_hide directive for the given key.
func (b *SSEBroadcaster) BroadcastHideMessage(sessionID, key string) {
	message := fmt.Sprintf("event: message_hide\ndata: {\"key\":\"%s\"}\n\n", key)
	b.send(sessionID, message)
}

func (b *SSEBroadcaster) send(sessionID, message string) {
	b.logger.SSE().Debug("Broadcasting to session", "message", strings.ReplaceAll(message, "\n", "\\n"), "sessionId", sessionID)

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.sessions[sessionID] {
		select {
		case ch <- message:
		default:
			b.logger.SSE().Warn("SSE channel full, message dropped", "sessionId", sessionID)
		}
	}
}

// HasConnectedSessions checks if any session holds an open SSE connection.
func (b *SSEBroadcaster) HasConnectedSessions() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.sessions) > 0
}
