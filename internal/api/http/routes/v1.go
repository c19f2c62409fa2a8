package routes

import (
	"github.com/gin-gonic/gin"

	authhttp "github.com/GoSim-25-26J-441/portfolio-backend/internal/auth/http"
	contacthttp "github.com/GoSim-25-26J-441/portfolio-backend/internal/contact/http"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/entities/domain"
	entityhttp "github.com/GoSim-25-26J-441/portfolio-backend/internal/entities/http"
)

type V1Deps struct {
	Projects     *entityhttp.Handler[domain.Project]
	Certificates *entityhttp.Handler[domain.Certificate]
	Session      *authhttp.Handler
	Contact      *contacthttp.Handler

	// Guard rejects requests without a valid admin session.
	Guard        gin.HandlerFunc
	LoginLimit   gin.HandlerFunc
	ContactLimit gin.HandlerFunc
}

func RegisterV1(r gin.IRouter, dep V1Deps) {
	api := r.Group("/api/v1")

	dep.Projects.RegisterPublic(api.Group("/projects"))
	dep.Certificates.RegisterPublic(api.Group("/certificates"))
	dep.Contact.Register(api.Group("/contact"), dep.ContactLimit)

	admin := api.Group("/admin")
	dep.Session.Register(admin, dep.Guard, dep.LoginLimit)

	guarded := admin.Group("", dep.Guard)
	dep.Projects.RegisterAdmin(guarded.Group("/projects"))
	dep.Certificates.RegisterAdmin(guarded.Group("/certificates"))
}
