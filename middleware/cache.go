package middleware

import "github.com/gin-gonic/gin"

// NoStoreMiddleware stops browsers and proxies from caching API responses,
// so a list fetched right after a write always reflects it.
func NoStoreMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
