package middleware

import (
	"net/http"
	"strings"
	"time"

	"eightify/model"
	"eightify/utils"

	"github.com/gin-gonic/gin"
)

const (
	ClientCookieName = "eightify_client"
	ClientIDHeader   = "X-Client-ID"
	TimezoneHeader   = "X-Timezone"

	ContextClientID = "client_id"
	ContextLocation = "location"
	ContextDevice   = "device"

	clientCookieMaxAge = 365 * 24 * time.Hour
)

// ClientSessionMiddleware identifies the browser behind a request. The id
// comes from the X-Client-ID header or the client cookie; a new one is issued
// and set as a cookie when neither is present. The viewer's timezone and a
// device label are resolved alongside; a missing or unknown X-Timezone
// leaves the location unset so the tracker keeps the zone it already has.
func ClientSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := strings.TrimSpace(c.GetHeader(ClientIDHeader))
		if clientID == "" {
			if cookie, err := c.Cookie(ClientCookieName); err == nil {
				clientID = cookie
			}
		}
		if clientID == "" {
			clientID = utils.NewID()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(
				ClientCookieName,
				clientID,
				int(clientCookieMaxAge.Seconds()),
				"/",
				"",
				c.Request.TLS != nil,
				true,
			)
		}

		c.Set(ContextClientID, clientID)
		if loc := model.LoadLocation(c.GetHeader(TimezoneHeader), nil); loc != nil {
			c.Set(ContextLocation, loc)
		}
		c.Set(ContextDevice, utils.DeviceLabel(c.Request.UserAgent()))
		c.Next()
	}
}

func ClientID(c *gin.Context) string {
	return c.GetString(ContextClientID)
}

// Location is the viewer's timezone, nil when the request did not name a
// known one.
func Location(c *gin.Context) *time.Location {
	if v, ok := c.Get(ContextLocation); ok {
		if loc, ok := v.(*time.Location); ok {
			return loc
		}
	}
	return nil
}

func Device(c *gin.Context) string {
	return c.GetString(ContextDevice)
}
