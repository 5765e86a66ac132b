package app

import (
	"context"
	"net/http"

	"sitetrack-go/internal/blob"
	"sitetrack-go/internal/config"
	"sitetrack-go/internal/db"
	assignmentdomain "sitetrack-go/internal/domain/assignment"
	clientdomain "sitetrack-go/internal/domain/client"
	photodomain "sitetrack-go/internal/domain/photo"
	projectdomain "sitetrack-go/internal/domain/project"
	userdomain "sitetrack-go/internal/domain/user"
	visitdomain "sitetrack-go/internal/domain/visit"
	"sitetrack-go/internal/live"
	assignmentrepo "sitetrack-go/internal/repository/assignment"
	clientrepo "sitetrack-go/internal/repository/client"
	photorepo "sitetrack-go/internal/repository/photo"
	projectrepo "sitetrack-go/internal/repository/project"
	userrepo "sitetrack-go/internal/repository/user"
	visitrepo "sitetrack-go/internal/repository/visit"
	"sitetrack-go/internal/seed"
	"sitetrack-go/internal/transport/httpserver"
	"sitetrack-go/internal/transport/httpserver/handler"
	"sitetrack-go/internal/webhook"
	"sitetrack-go/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	log        logger.Logger
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	var blobStore blob.Store
	if cfg.Blob.Bucket != "" {
		log.Info("app: initializing blob store", "bucket", cfg.Blob.Bucket)
		blobStore, err = blob.NewS3(context.Background(), cfg.Blob)
		if err != nil {
			return nil, err
		}
	} else {
		log.Warn("app: blob store not configured; uploads disabled")
	}

	var verifier *webhook.Verifier
	if cfg.Webhook.SigningSecret != "" {
		verifier, err = webhook.NewVerifier(cfg.Webhook.SigningSecret, cfg.Webhook.Tolerance)
		if err != nil {
			return nil, err
		}
	} else {
		log.Warn("app: webhook secret not configured; identity webhook disabled")
	}

	hub := live.NewHub()

	clientRepo := clientrepo.NewPostgres(dbConn)
	projectRepo := projectrepo.NewPostgres(dbConn)
	visitRepo := visitrepo.NewPostgres(dbConn)
	photoRepo := photorepo.NewPostgres(dbConn)
	assignmentRepo := assignmentrepo.NewPostgres(dbConn)
	userRepo := userrepo.NewPostgres(dbConn)

	clients := clientdomain.NewService(clientRepo, hub)
	projects := projectdomain.NewService(projectRepo, clientSource{clients: clients}, hub)
	photos := photodomain.NewService(photoRepo, hub)
	visits := visitdomain.NewService(visitRepo, photos, blobStore, hub, log)
	users := userdomain.NewService(userRepo, hub)
	assignments := assignmentdomain.NewService(
		assignmentRepo,
		projectSource{projects: projects},
		userSource{users: users},
		hub,
	)

	if cfg.SeedDemoData {
		if err := seed.Demo(context.Background(), clients, projects, visits, photos, assignments, log); err != nil {
			return nil, err
		}
	}

	handlers := handler.New(handler.Deps{
		Clients:      clients,
		Projects:     projects,
		Visits:       visits,
		Photos:       photos,
		Assignments:  assignments,
		Users:        users,
		Blobs:        blobStore,
		UploadExpiry: cfg.Blob.UploadExpiry,
		Hub:          hub,
		Webhooks:     verifier,
	}, log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, users, registry, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		log:        log,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
