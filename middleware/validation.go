package middleware

import (
	"eightify/utils"

	"github.com/gin-gonic/gin"
)

type clientHeaders struct {
	ClientID string `header:"X-Client-ID" binding:"omitempty,clientid"`
}

// ValidateClientHeaders rejects a malformed client id before it can be used
// as a storage key.
func ValidateClientHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		var headers clientHeaders
		if err := c.ShouldBindHeader(&headers); err != nil {
			utils.TrackError("validation")
			utils.BadRequest(c, "Invalid client id")
			c.Abort()
			return
		}
		c.Next()
	}
}
