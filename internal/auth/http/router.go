package http

import "github.com/gin-gonic/gin"

// Register mounts the session endpoints. guard protects logout; limit
// throttles login attempts.
func (h *Handler) Register(rg *gin.RouterGroup, guard, limit gin.HandlerFunc) {
	rg.POST("/login", limit, h.Login)
	rg.GET("/session", h.Session)
	rg.POST("/logout", guard, h.Logout)
}
