package middleware

import "github.com/gin-gonic/gin"

// CacheControlMiddleware sets the Cache-Control directive on every response.
// Timer state changes every second, so the API uses "no-store".
func CacheControlMiddleware(directive string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", directive)
		c.Next()
	}
}
