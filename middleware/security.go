package middleware

import (
	"net/http"

	"eightify/utils"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodySize bounds request bodies; every payload here is a small JSON object.
const DefaultMaxBodySize = 64 << 10

func RequestSizeLimiter(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			c.JSON(http.StatusRequestEntityTooLarge, &utils.Response{Error: "Request body too large"})
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
