// Package messaging defines interfaces for real-time communication.
package messaging

import "github.com/anja687gutierrez-jpg/goiconicway/internal/domain/entities/engagement"

// Broadcaster defines the interface for managing SSE client connections and pushing engagement directives.
type Broadcaster interface {
	AddClientWithSession(sessionID string) chan string
	RemoveClientWithSession(ch chan string, sessionID string)
	GetSessionConnectionCount(sessionID string) int
	BroadcastShowMessage(sessionID string, def *engagement.MessageDefinition)
	BroadcastHideMessage(sessionID, key string)
	HasConnectedSessions() bool
}
