package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iwtcode/grblService/internal/middleware/logging"
)

// LoggingMiddleware пишет в лог каждый обработанный HTTP-запрос.
func LoggingMiddleware(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client", c.ClientIP(),
		)
	}
}
