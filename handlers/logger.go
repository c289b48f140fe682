package handlers

import (
	"memoria/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves a request-scoped Zap logger from the Gin context,
// falling back to the shared global logger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// currentUserID returns the authenticated user ID bound by the auth
// middleware, or "" when the request is unauthenticated.
func currentUserID(c *gin.Context) string {
	id, ok := c.Get("userID")
	if !ok {
		return ""
	}
	idStr, _ := id.(string)
	return idStr
}
