package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const sessionHeader = "X-GoIconicWay-Session-ID"

// SessionMiddleware extracts the session ID header into the request context.
// Handlers behind it can rely on a non-empty session ID.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(sessionHeader)
		if sessionID == "" {
			sessionID = c.Query("sessionId")
		}
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID required"})
			c.Abort()
			return
		}
		c.Set("sessionId", sessionID)
		c.Next()
	}
}

// GetSessionID returns the session ID placed by SessionMiddleware.
func GetSessionID(c *gin.Context) string {
	return c.GetString("sessionId")
}
