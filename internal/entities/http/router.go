package http

import "github.com/gin-gonic/gin"

// RegisterPublic mounts the read-only list endpoint.
func (h *Handler[T]) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}

// RegisterAdmin mounts the write endpoints. The caller guards rg.
func (h *Handler[T]) RegisterAdmin(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
