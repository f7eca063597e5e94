package middleware

import (
	"net/http"

	"colornotes/utils"

	"github.com/gin-gonic/gin"
)

// RequestSizeLimiter rejects bodies larger than maxSize. Declared lengths
// are refused up front; chunked bodies are cut off by MaxBytesReader and
// surface as a bind error in the handler.
func RequestSizeLimiter(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			utils.RequestTooLarge(c, "Request body too large")
			return
		}

		var w http.ResponseWriter = c.Writer
		c.Request.Body = http.MaxBytesReader(w, c.Request.Body, maxSize)

		c.Next()
	}
}
