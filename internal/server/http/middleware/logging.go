package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs method, path, status, payload sizes and latency for
// every request. Submissions carry multi-megabyte PDF bodies, so both
// directions are recorded.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Int64("request_bytes", c.Request.ContentLength),
			slog.Int("response_bytes", c.Writer.Size()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
