package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
)

// LoginPath is where unauthenticated admin page requests are sent.
const LoginPath = auth.LoginPagePath

// Authorizer is the part of the gate the guards need.
type Authorizer interface {
	State() auth.State
	Authorize(token string) bool
}

// AdminGuard protects the admin pages. While the session is still being
// resolved it serves loadingPage with 503 and never reaches the handlers.
func AdminGuard(gate Authorizer, loadingPage []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := gate.State()
		if !st.Resolved() {
			c.Header("Retry-After", "1")
			c.Header("Cache-Control", "no-store")
			c.Data(http.StatusServiceUnavailable, "text/html; charset=utf-8", loadingPage)
			c.Abort()
			return
		}

		if !gate.Authorize(auth.RequestToken(c)) {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		c.Set(auth.CtxAdminSource, st.Source)
		c.Next()
	}
}

// APIGuard protects the JSON admin API with the same gate.
func APIGuard(gate Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := gate.State()
		if !st.Resolved() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "session is initializing"})
			return
		}

		if !gate.Authorize(auth.RequestToken(c)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "not authenticated"})
			return
		}

		c.Set(auth.CtxAdminSource, st.Source)
		c.Next()
	}
}
