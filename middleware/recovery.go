package middleware

import (
	"log"
	"runtime/debug"

	"eightify/utils"

	"github.com/gin-gonic/gin"
)

func EnhancedRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Panic serving %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, err, debug.Stack())
				utils.TrackError("panic")
				utils.InternalError(c, "Something went wrong, please try again")
				c.Abort()
			}
		}()
		c.Next()
	}
}
