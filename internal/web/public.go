package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/apperrors"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/contact"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/logging"
)

func (h *Handler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	data := h.page(c, "Portfólio", false)

	projects, err := h.deps.Projects.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("load projects", zap.Error(err))
		data["ProjectsError"] = "Erro ao carregar projetos"
	}
	data["Projects"] = projects

	certificates, err := h.deps.Certificates.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("load certificates", zap.Error(err))
		data["CertificatesError"] = "Erro ao carregar certificados"
	}
	data["Certificates"] = certificates

	c.HTML(http.StatusOK, "home.html", data)
}

func (h *Handler) Certificates(c *gin.Context) {
	data := h.page(c, "Certificados", false)

	items, err := h.deps.Certificates.List(c.Request.Context())
	if err != nil {
		logging.FromContext(c.Request.Context()).Error("load certificates", zap.Error(err))
		data["Error"] = "Erro ao carregar certificados"
	}
	data["Certificates"] = items

	c.HTML(http.StatusOK, "certificates.html", data)
}

// ContactSubmit relays the home page contact form and redirects back to it.
func (h *Handler) ContactSubmit(c *gin.Context) {
	m := contact.Message{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	}

	err := h.deps.Contact.Send(c.Request.Context(), m)
	var ve *apperrors.ValidationError
	switch {
	case err == nil:
		h.deps.Flashes.Add(c, FlashSuccess, "Mensagem enviada com sucesso!")
	case errors.As(err, &ve):
		h.deps.Flashes.Add(c, FlashError, ve.Error())
	default:
		logging.FromContext(c.Request.Context()).Error("contact relay failed", zap.Error(err))
		h.deps.Flashes.Add(c, FlashError, "Erro ao enviar mensagem. Tente novamente.")
	}
	c.Redirect(http.StatusSeeOther, "/#contato")
}
