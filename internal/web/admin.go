package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/logging"
)

const dashboardPath = "/admin/dashboard"

func (h *Handler) LoginPage(c *gin.Context) {
	if h.deps.Gate.Authorize(auth.RequestToken(c)) {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}
	c.HTML(http.StatusOK, "login.html", h.page(c, "Área Administrativa", false))
}

func (h *Handler) LoginSubmit(c *gin.Context) {
	token, ok, err := h.deps.Gate.Login(c.Request.Context(), c.PostForm("password"))
	if err != nil {
		logging.FromContext(c.Request.Context()).Error("admin login failed", zap.Error(err))
		h.deps.Flashes.Add(c, FlashError, "Erro ao fazer login")
		c.Redirect(http.StatusSeeOther, auth.LoginPagePath)
		return
	}
	if !ok {
		h.deps.Flashes.Add(c, FlashError, "Senha incorreta")
		c.Redirect(http.StatusSeeOther, auth.LoginPagePath)
		return
	}

	auth.SetSessionCookie(c, token, h.deps.SessionTTL, h.deps.SecureCookie)
	h.deps.Flashes.Add(c, FlashSuccess, "Login realizado com sucesso!")
	c.Redirect(http.StatusSeeOther, dashboardPath)
}

func (h *Handler) Logout(c *gin.Context) {
	h.deps.Gate.Logout(c.Request.Context())
	auth.ClearSessionCookie(c, h.deps.SecureCookie)
	c.Redirect(http.StatusSeeOther, auth.LoginPagePath)
}

func (h *Handler) AdminIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, dashboardPath)
}

func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	data := h.page(c, "Dashboard", true)

	projects, perr := h.deps.Projects.List(ctx)
	certificates, cerr := h.deps.Certificates.List(ctx)
	if perr != nil || cerr != nil {
		logging.FromContext(ctx).Error("load dashboard counts",
			zap.NamedError("projects", perr),
			zap.NamedError("certificates", cerr),
		)
		data["Error"] = "Erro ao carregar dados"
	}
	data["ProjectCount"] = len(projects)
	data["CertificateCount"] = len(certificates)
	data["SessionSource"] = sessionLabel(auth.AdminSource(c))

	c.HTML(http.StatusOK, "admin_dashboard.html", data)
}

func sessionLabel(src auth.Source) string {
	switch src {
	case auth.SourceHosted:
		return "Firebase"
	case auth.SourceLocalToken:
		return "token salvo"
	default:
		return "desconhecida"
	}
}
