package web

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/contact"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/entities/domain"
	entityhttp "github.com/GoSim-25-26J-441/portfolio-backend/internal/entities/http"
)

// Gate is the admin session gate as seen by the pages.
type Gate interface {
	State() auth.State
	Authorize(token string) bool
	Login(ctx context.Context, secret string) (token string, ok bool, err error)
	Logout(ctx context.Context)
}

type ContactSender interface {
	Send(ctx context.Context, m contact.Message) error
}

type Deps struct {
	Projects     entityhttp.Service[domain.Project]
	Certificates entityhttp.Service[domain.Certificate]
	Gate         Gate
	Contact      ContactSender
	Flashes      *FlashStore
	SessionTTL   time.Duration
	SecureCookie bool
}

type Handler struct {
	deps         Deps
	projects     *entityPages[domain.Project]
	certificates *entityPages[domain.Certificate]
}

func New(deps Deps) *Handler {
	return &Handler{
		deps: deps,
		projects: &entityPages[domain.Project]{
			svc:      deps.Projects,
			flashes:  deps.Flashes,
			path:     "/admin/projetos",
			template: "admin_projects.html",
			title:    "Projetos",
			noun:     "projeto",
		},
		certificates: &entityPages[domain.Certificate]{
			svc:      deps.Certificates,
			flashes:  deps.Flashes,
			path:     "/admin/certificados",
			template: "admin_certificates.html",
			title:    "Certificados",
			noun:     "certificado",
		},
	}
}

// Register mounts every page. guard protects the admin subtree; loginLimit
// and contactLimit throttle the two public form posts.
func (h *Handler) Register(r gin.IRouter, guard, loginLimit, contactLimit gin.HandlerFunc) {
	r.GET("/", h.Home)
	r.GET("/certificados", h.Certificates)
	r.POST("/contato", contactLimit, h.ContactSubmit)

	r.GET(auth.LoginPagePath, h.LoginPage)
	r.POST(auth.LoginPagePath, loginLimit, h.LoginSubmit)

	admin := r.Group("/admin", guard)
	admin.GET("", h.AdminIndex)
	admin.GET("/dashboard", h.Dashboard)
	admin.POST("/logout", h.Logout)
	h.projects.register(admin.Group("/projetos"))
	h.certificates.register(admin.Group("/certificados"))
}

func (h *Handler) page(c *gin.Context, title string, admin bool) gin.H {
	return gin.H{
		"Title":   title,
		"Admin":   admin,
		"Flashes": h.deps.Flashes.Pop(c),
	}
}
