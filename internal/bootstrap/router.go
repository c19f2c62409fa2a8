package bootstrap

import (
	"html/template"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/GoSim-25-26J-441/portfolio-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/api/http/routes"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/web"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Logger      *zap.Logger
	CORSOrigins []string

	DB    httpapi.Pinger
	Redis *redis.Client

	Templates *template.Template
	Web       *web.Handler
	// AdminGuard protects the admin pages, APIGuard the admin JSON API.
	AdminGuard gin.HandlerFunc
	APIGuard   gin.HandlerFunc

	V1 routes.V1Deps
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.SetHTMLTemplate(dep.Templates)

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	dep.Web.Register(r, dep.AdminGuard, dep.V1.LoginLimit, dep.V1.ContactLimit)

	v1 := dep.V1
	v1.Guard = dep.APIGuard
	routes.RegisterV1(r, v1)

	return r
}
