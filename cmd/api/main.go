package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appaudit "github.com/shrinkstudio/shrink-tools-api/internal/application/audit"
	appleads "github.com/shrinkstudio/shrink-tools-api/internal/application/leadcapture"
	"github.com/shrinkstudio/shrink-tools-api/internal/config"
	"github.com/shrinkstudio/shrink-tools-api/internal/domain/reports"
	aiOpenai "github.com/shrinkstudio/shrink-tools-api/internal/infra/ai/openai"
	mysqlp "github.com/shrinkstudio/shrink-tools-api/internal/infra/db/mysql"
	postgresp "github.com/shrinkstudio/shrink-tools-api/internal/infra/db/postgres"
	"github.com/shrinkstudio/shrink-tools-api/internal/infra/fetch"
	"github.com/shrinkstudio/shrink-tools-api/internal/infra/httpserver"
	minioStore "github.com/shrinkstudio/shrink-tools-api/internal/infra/storage"
	"github.com/shrinkstudio/shrink-tools-api/internal/infra/tracker/clickup"
	"github.com/shrinkstudio/shrink-tools-api/internal/logger"
	"github.com/shrinkstudio/shrink-tools-api/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logg := logger.New(cfg.Log.Level)
	ctx := context.Background()

	// connect database per configured driver
	var db *sql.DB
	var repo reports.Repository
	switch cfg.Database.Driver {
	case "mysql":
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqlp.NewReportRepository(db)
	default:
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresp.NewReportRepository(db)
	}
	defer db.Close()

	// init snapshot store (optional)
	var snapshots appaudit.SnapshotStore
	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		snapshots = store
	}

	// init services
	auditSvc := &appaudit.Service{
		Repo:      repo,
		AI:        aiOpenai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model),
		Fetcher:   fetch.NewClient(),
		Snapshots: snapshots,
		Clock:     appaudit.SystemClock{},
		Logger:    logg,
	}
	leadsSvc := &appleads.Service{
		Repo:    repo,
		Tasks:   clickup.NewClient(cfg.ClickUp.APIKey, cfg.ClickUp.ListID),
		BaseURL: cfg.PublicBaseURL,
		Logger:  logg,
	}

	checkers := map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}

	mux := httpserver.NewRouter(auditSvc, leadsSvc, logg, checkers)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	// write timeout covers fetch (15s) plus the model call
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		logg.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logg.Info("shutting down server")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logg.Error("shutdown error", "error", err)
	}
}
