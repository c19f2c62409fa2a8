package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/logging"
)

// Login exchanges the admin password for a session token. The token is set
// as a cookie and also returned for API clients.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	token, ok, err := h.gate.Login(c.Request.Context(), req.Password)
	if err != nil {
		logging.FromContext(c.Request.Context()).Error("admin login failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "login failed, try again later"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid password"})
		return
	}

	auth.SetSessionCookie(c, token, h.ttl, h.secureCookie)
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token})
}

func (h *Handler) Logout(c *gin.Context) {
	h.gate.Logout(c.Request.Context())
	auth.ClearSessionCookie(c, h.secureCookie)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Session reports the gate state and whether this client holds the session.
func (h *Handler) Session(c *gin.Context) {
	st := h.gate.State()
	resp := sessionResponse{
		OK:         true,
		Phase:      st.Phase.String(),
		Authorized: h.gate.Authorize(auth.RequestToken(c)),
	}
	if st.Active() {
		resp.Source = st.Source.String()
	}
	c.JSON(http.StatusOK, resp)
}
