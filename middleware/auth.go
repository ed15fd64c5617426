package middleware

import (
	"context"
	"strings"

	"eightify/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "user_id"
	ContextToken  = "token"
)

// Authenticator resolves a bearer token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

// AuthMiddleware rejects requests without a valid, unrevoked bearer token.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.Unauthorized(c, "Missing or invalid token")
			c.Abort()
			return
		}
		if !authenticate(c, auth, token) {
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware lets guests through. A token that is present but
// invalid is still rejected so a client never silently falls back to guest.
func OptionalAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		if !authenticate(c, auth, token) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, auth Authenticator, token string) bool {
	userID, err := auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		utils.TrackError("auth")
		utils.Unauthorized(c, "Invalid token")
		c.Abort()
		return false
	}
	c.Set(ContextUserID, userID)
	c.Set(ContextToken, token)
	return true
}

// UserID is the authenticated user, empty for guests.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func Token(c *gin.Context) string {
	return c.GetString(ContextToken)
}
