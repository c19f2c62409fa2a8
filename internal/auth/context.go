package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie is the browser cookie carrying the admin session token.
	SessionCookie = "admin_token"

	// LoginPagePath is the admin login page.
	LoginPagePath = "/admin/login"

	CtxAdminSource = "admin_source"
)

// RequestToken returns the session token from the cookie, falling back to a
// Bearer Authorization header for API clients.
func RequestToken(c *gin.Context) string {
	if v, err := c.Cookie(SessionCookie); err == nil && v != "" {
		return v
	}
	bearer := c.GetHeader("Authorization")
	if len(bearer) > 7 && strings.HasPrefix(bearer, "Bearer ") {
		return strings.TrimSpace(bearer[7:])
	}
	return ""
}

// AdminSource returns the session source recorded by the guard.
func AdminSource(c *gin.Context) Source {
	if v, ok := c.Get(CtxAdminSource); ok {
		if s, ok := v.(Source); ok {
			return s
		}
	}
	return SourceNone
}

// SetSessionCookie hands token to the browser as an HttpOnly cookie.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}
