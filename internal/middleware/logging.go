package middleware

import (
	"time"

	"agrolink-be/internal/logger"
	"agrolink-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logging emits one structured log line per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		userID, _ := utils.GetUserIDFromContext(c.Request.Context())

		logger.FromCtx(c.Request.Context()).Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote_ip", c.ClientIP()),
			zap.Uint("user_id", userID),
		)
	}
}
