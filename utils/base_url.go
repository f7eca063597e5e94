package utils

import "github.com/gin-gonic/gin"

// ResourceURL builds an absolute URL for path on the host that served c.
func ResourceURL(c *gin.Context, path string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if forwarded := c.GetHeader("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + c.Request.Host + path
}
