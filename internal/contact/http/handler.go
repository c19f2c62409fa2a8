package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/apperrors"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/contact"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/logging"
)

type Sender interface {
	Send(ctx context.Context, m contact.Message) error
}

type Handler struct {
	svc Sender
}

func New(svc Sender) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Send(c *gin.Context) {
	var m contact.Message
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	err := h.svc.Send(c.Request.Context(), m)
	var ve *apperrors.ValidationError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Message sent. Thank you!"})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": ve.Error()})
	default:
		logging.FromContext(c.Request.Context()).Error("contact relay failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "Could not send the message. Please try again later."})
	}
}

// Register mounts POST "" on rg behind limit.
func (h *Handler) Register(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	rg.POST("", limit, h.Send)
}
