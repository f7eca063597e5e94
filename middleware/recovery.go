package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"colornotes/utils"

	"github.com/gin-gonic/gin"
)

func EnhancedRecoveryMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				TrackError("panic")
				logger.Error("Recovered from panic",
					"error", err,
					"path", c.Request.URL.Path,
					"request_id", c.GetString(RequestIDKey),
					"stack", string(debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					utils.ErrorResponse{Error: "Internal server error"})
			}
		}()
		c.Next()
	}
}
