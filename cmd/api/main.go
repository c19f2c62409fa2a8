package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/config"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/api/http/routes"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
	authhttp "github.com/GoSim-25-26J-441/portfolio-backend/internal/auth/http"
	authmw "github.com/GoSim-25-26J-441/portfolio-backend/internal/auth/middleware"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/contact"
	contacthttp "github.com/GoSim-25-26J-441/portfolio-backend/internal/contact/http"
	cronjob "github.com/GoSim-25-26J-441/portfolio-backend/internal/cron"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/entities/domain"
	entityhttp "github.com/GoSim-25-26J-441/portfolio-backend/internal/entities/http"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/entities/repository"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/entities/service"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/logging"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/storage/objects"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/storage/postgres"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/web"
)

const serviceName = "portfolio-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap.SetGinMode(cfg.App.Environment)

	dsn := postgres.DSN(&cfg.Database)
	mdb, err := postgres.NewConnection(ctx, dsn)
	if err != nil {
		return err
	}
	if err := postgres.RunMigrations(mdb, logger); err != nil {
		return err
	}

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      dsn,
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		return err
	}
	defer pool.Close()
	db := bootstrap.OpenSQL(pool)

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	app, err := auth.InitializeFirebase(ctx, &cfg.Firebase, cfg.Storage.Bucket)
	if err != nil {
		return err
	}
	store, err := newObjectStore(ctx, app, &cfg.Storage)
	if err != nil {
		return err
	}

	tokens := auth.NewRedisTokenStore(rdb)
	provider, err := auth.NewFirebaseProviderFromApp(ctx, app, auth.ProviderOptions{
		APIKey:     cfg.Firebase.APIKey,
		SessionTTL: cfg.Admin.SessionTTL,
		Persisted:  tokens,
	})
	if err != nil {
		return err
	}
	gate := auth.NewGate(provider, tokens, auth.GateConfig{
		AdminPassword: cfg.Admin.Password,
		AdminEmail:    cfg.Admin.Email,
		SessionTTL:    cfg.Admin.SessionTTL,
	}, logger.Named("auth"))
	go gate.CheckSession(ctx)

	scheduler := cronjob.NewScheduler(logger.Named("cron"))
	if err := scheduler.AddSessionCheck(cfg.Admin.SessionCheckInterval, 10*time.Second, gate); err != nil {
		return err
	}
	scheduler.Start()

	projects := service.New(domain.ProjectSchema, repository.New(db, domain.ProjectSchema), store)
	certificates := service.New(domain.CertificateSchema, repository.New(db, domain.CertificateSchema), store)

	mailer := contact.NewEmailJSClient(contact.EmailJSConfig{
		ServiceID:  cfg.Email.ServiceID,
		TemplateID: cfg.Email.TemplateID,
		PublicKey:  cfg.Email.PublicKey,
		PrivateKey: cfg.Email.PrivateKey,
	})
	if !mailer.Configured() {
		logger.Warn("EmailJS is not configured, contact messages will fail")
	}
	contactSvc := contact.NewService(mailer, cfg.Email.ToName)

	tmpl, err := web.Templates()
	if err != nil {
		return err
	}
	loading, err := web.LoadingPage(tmpl)
	if err != nil {
		return err
	}

	secure := cfg.IsProduction()
	loginLimit := middleware.NewIPRateLimiter(middleware.PerMinute(5), 5).Middleware()
	contactLimit := middleware.NewIPRateLimiter(middleware.PerMinute(3), 3).Middleware()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Logger:      logger,
		CORSOrigins: cfg.Server.CORSAllowedOrigins,
		DB:          pool,
		Redis:       rdb,
		Templates:   tmpl,
		Web: web.New(web.Deps{
			Projects:     projects,
			Certificates: certificates,
			Gate:         gate,
			Contact:      contactSvc,
			Flashes:      web.NewFlashStore(cfg.Admin.SessionSecret, secure),
			SessionTTL:   cfg.Admin.SessionTTL,
			SecureCookie: secure,
		}),
		AdminGuard: authmw.AdminGuard(gate, loading),
		APIGuard:   authmw.APIGuard(gate),
		V1: routes.V1Deps{
			Projects:     entityhttp.New[domain.Project](projects),
			Certificates: entityhttp.New[domain.Certificate](certificates),
			Session:      authhttp.New(gate, cfg.Admin.SessionTTL, secure),
			Contact:      contacthttp.New(contactSvc),
			LoginLimit:   loginLimit,
			ContactLimit: contactLimit,
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	scheduler.Stop(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}

func newObjectStore(ctx context.Context, app *firebase.App, cfg *config.StorageConfig) (objects.Store, error) {
	if cfg.Backend == "s3" {
		return objects.NewS3Store(ctx, cfg.Region, cfg.Bucket, cfg.PublicBaseURL)
	}
	return objects.NewFirebaseStore(ctx, app, cfg.Bucket, cfg.PublicBaseURL)
}
