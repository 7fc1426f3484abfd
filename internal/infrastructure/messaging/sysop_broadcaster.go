package messaging

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/caching/manager"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/caching/stores"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/gorilla/websocket"
)

// SysOpClient represents a single connected operator dashboard client.
type SysOpClient struct {
	Conn *websocket.Conn
	Send chan []byte
}

// ActivityPayload is the snapshot sent to the operator dashboard on each tick.
type ActivityPayload struct {
	TotalSessions   int                  `json:"totalSessions"`
	EventCounts     map[string]int       `json:"eventCounts"`
	RecentDecisions []stores.JournalEntry `json:"recentDecisions"`
	GeneratedAt     time.Time            `json:"generatedAt"`
}

// SysOpBroadcaster manages all connected operator clients and streams
// engagement activity to them.
type SysOpBroadcaster struct {
	clients      map[*SysOpClient]bool
	register     chan *SysOpClient
	unregister   chan *SysOpClient
	cacheManager *manager.Manager
	logger       *logging.ChanneledLogger
	mu           sync.RWMutex
}

// NewSysOpBroadcaster creates a new broadcaster instance.
func NewSysOpBroadcaster(cm *manager.Manager, logger *logging.ChanneledLogger) *SysOpBroadcaster {
	return &SysOpBroadcaster{
		clients:      make(map[*SysOpClient]bool),
		register:     make(chan *SysOpClient),
		unregister:   make(chan *SysOpClient),
		cacheManager: cm,
		logger:       logger,
	}
}

// Run starts the broadcaster's main loop. This should be run as a goroutine.
func (b *SysOpBroadcaster) Run() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case client := <-b.register:
			b.mu.Lock()
			b.clients[client] = true
			b.mu.Unlock()
			b.logger.System().Info("SysOp client registered", "clients", b.clientCount())

		case client := <-b.unregister:
			b.mu.Lock()
			if _, ok := b.clients[client]; ok {
				delete(b.clients, client)
				close(client.Send)
			}
			b.mu.Unlock()
			b.logger.System().Info("SysOp client unregistered", "clients", b.clientCount())

		case <-ticker.C:
			b.broadcastActivity()
		}
	}
}

// Register queues a client for registration.
func (b *SysOpBroadcaster) Register(client *SysOpClient) {
	b.register <- client
}

// Unregister queues a client for unregistration.
func (b *SysOpBroadcaster) Unregister(client *SysOpClient) {
	b.unregister <- client
}

func (b *SysOpBroadcaster) clientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// broadcastActivity gathers and sends the current activity snapshot to all
// connected operator clients.
func (b *SysOpBroadcaster) broadcastActivity() {
	if b.clientCount() == 0 {
		return
	}

	payload := ActivityPayload{
		TotalSessions:   b.cacheManager.SessionCount(),
		EventCounts:     b.cacheManager.Journal().CountByKind(),
		RecentDecisions: b.cacheManager.Journal().Recent(50),
		GeneratedAt:     time.Now().UTC(),
	}

	message, err := json.Marshal(payload)
	if err != nil {
		b.logger.System().Error("Error marshaling activity snapshot", "error", err)
		return
	}

	b.mu.RLock()
	for client := range b.clients {
		select {
		case client.Send <- message:
		default:
		}
	}
	b.mu.RUnlock()
}
