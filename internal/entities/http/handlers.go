package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/logging"
)

func (h *Handler[T]) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

// Create accepts a JSON object or a multipart form with an optional image.
func (h *Handler[T]) Create(c *gin.Context) {
	fields, img, err := ReadFields(c)
	if err != nil {
		h.fail(c, "create", err)
		return
	}

	item, err := h.svc.Create(c.Request.Context(), fields, img)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "item": item})
}

func (h *Handler[T]) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	fields, _, err := ReadFields(c)
	if err != nil {
		h.fail(c, "update", err)
		return
	}

	item, err := h.svc.Update(c.Request.Context(), id, fields)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "item": item})
}

func (h *Handler[T]) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, "delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler[T]) fail(c *gin.Context, op string, err error) {
	status, msg := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("entity request failed",
			zap.String("entity", h.svc.Schema().Name),
			zap.String("op", op),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"ok": false, "error": msg})
}

// ParseID reads the :id path parameter.
func ParseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, ok := ParseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid id"})
	}
	return id, ok
}
