package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mileusna/useragent"
)

// AccessLogMiddleware writes one structured line per request.
func AccessLogMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ua := useragent.Parse(c.Request.UserAgent())

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"bytes", c.Writer.Size(),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(RequestIDKey),
		}
		if ua.Name != "" {
			attrs = append(attrs, "client", clientName(ua))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			logger.Error("request", attrs...)
		case status >= 400:
			logger.Warn("request", attrs...)
		default:
			logger.Info("request", attrs...)
		}
	}
}

func clientName(ua useragent.UserAgent) string {
	name := ua.Name
	if ua.Version != "" {
		name += "/" + ua.Version
	}
	if ua.OS != "" {
		name += " (" + ua.OS + ")"
	}
	return name
}
