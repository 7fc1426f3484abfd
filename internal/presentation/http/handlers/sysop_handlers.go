package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/application/container"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/messaging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SysOpHandlers serves the operator console: login, live activity, and log
// streaming.
type SysOpHandlers struct {
	container *container.Container
}

// NewSysOpHandlers creates the operator handler group.
func NewSysOpHandlers(c *container.Container) *SysOpHandlers {
	return &SysOpHandlers{container: c}
}

// Login handles POST /api/sysop/login.
func (h *SysOpHandlers) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}

	token, err := h.container.AuthService.LoginSysop(req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// AuthCheck handles GET /api/sysop/auth.
func (h *SysOpHandlers) AuthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authenticated": h.container.AuthService.ValidateSysopToken(bearerToken(c))})
}

// SysOpAuthMiddleware protects operator endpoints.
func (h *SysOpHandlers) SysOpAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.container.AuthService.ValidateSysopToken(bearerToken(c)) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, found := strings.CutPrefix(header, "Bearer "); found {
		return token
	}
	return c.Query("token")
}

// GetActivityMetrics handles GET /api/sysop/activity - a one-shot snapshot.
func (h *SysOpHandlers) GetActivityMetrics(c *gin.Context) {
	cacheManager := h.container.CacheManager
	c.JSON(http.StatusOK, gin.H{
		"sessions":        cacheManager.SessionCount(),
		"eventCounts":     cacheManager.Journal().CountByKind(),
		"recentDecisions": cacheManager.Journal().Recent(50),
		"operations":      h.container.PerfTracker.Stats(),
		"uptime":          h.container.PerfTracker.Uptime().String(),
	})
}

// ActivityWS handles GET /api/sysop/activity/ws - the live activity stream.
func (h *SysOpHandlers) ActivityWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.container.Logger.System().Error("Activity websocket upgrade failed", "error", err.Error())
		return
	}

	client := &messaging.SysOpClient{
		Conn: conn,
		Send: make(chan []byte, 16),
	}
	h.container.SysOpBroadcaster.Register(client)

	// Write pump. The read pump exists only to detect disconnects.
	go func() {
		defer func() {
			h.container.SysOpBroadcaster.Unregister(client)
			conn.Close()
		}()
		for message := range client.Send {
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		}
	}()

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.container.SysOpBroadcaster.Unregister(client)
				return
			}
		}
	}()
}

// StreamLogs handles the SSE connection for live log streaming.
func (h *SysOpHandlers) StreamLogs(c *gin.Context) {
	broadcaster := h.container.LogBroadcaster
	if broadcaster == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Log broadcaster not available"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")

	channelFilter := c.DefaultQuery("channel", "all")
	levelFilter := c.DefaultQuery("level", "INFO")
	var logLevel slog.Level
	switch levelFilter {
	case "DEBUG":
		logLevel = slog.LevelDebug
	case "WARN":
		logLevel = slog.LevelWarn
	case "ERROR":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	filters := logging.AppliedFilters{
		Channel: logging.Channel(channelFilter),
		Level:   logLevel,
	}

	client := broadcaster.NewClient(filters)
	broadcaster.RegisterClient(client)
	defer broadcaster.UnregisterClient(client)

	fmt.Fprintf(c.Writer, ": connection established\n\n")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-client.Channel:
			if !ok {
				return false
			}
			fmt.Fprintf(w, "data: %s\n\n", message)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// GetLogLevels handles GET /api/sysop/logs/levels.
func (h *SysOpHandlers) GetLogLevels(c *gin.Context) {
	levels := h.container.Logger.GetChannelLevels()
	out := make(map[string]string, len(levels))
	for channel, level := range levels {
		out[string(channel)] = level.String()
	}
	c.JSON(http.StatusOK, gin.H{"levels": out})
}

// SetLogLevel handles POST /api/sysop/logs/levels.
func (h *SysOpHandlers) SetLogLevel(c *gin.Context) {
	var req struct {
		Channel string `json:"channel" binding:"required"`
		Level   string `json:"level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "channel and level are required"})
		return
	}

	var level slog.Level
	switch strings.ToUpper(req.Level) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown level"})
		return
	}

	if err := h.container.Logger.SetChannelLevel(logging.Channel(req.Channel), level); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"channel": req.Channel, "level": level.String(), "changedAt": time.Now().UTC()})
}
