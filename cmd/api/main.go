package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/Dan9191/rm-dashboard/internal/config"
	"github.com/Dan9191/rm-dashboard/internal/evidence"
	"github.com/Dan9191/rm-dashboard/internal/handler"
	"github.com/Dan9191/rm-dashboard/internal/integrations/cbr"
	"github.com/Dan9191/rm-dashboard/internal/notify"
	"github.com/Dan9191/rm-dashboard/internal/repository"
	"github.com/Dan9191/rm-dashboard/internal/service"
	"github.com/Dan9191/rm-dashboard/internal/telemetry"
	"github.com/Dan9191/rm-dashboard/internal/web"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.Info("Application starting...")

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load client profiles once; failures fall back to sample data
	source, closeSource := newProfileSource(cfg, logger)
	store := repository.Load(context.Background(), source, logger)
	closeSource()

	notice := ""
	if err := store.Diagnostic(); err != nil {
		notice = "Client database unreachable, showing sample client data."
	}

	metrics := telemetry.New()
	metrics.SetProfilesLoaded(store.Source(), len(store.Names()))

	// Initialize layers
	opts := []service.Option{
		service.WithRecorder(metrics),
		service.WithRates(cbr.NewClient(cfg, logger)),
	}
	if cfg.EmailEnabled() {
		opts = append(opts, service.WithMailer(notify.NewSender(cfg, logger)))
	}
	svc := service.NewService(store, evidence.NewStatic(), logger, cfg, opts...)

	pages, err := web.NewRenderer()
	if err != nil {
		logger.Fatalf("Failed to load templates: %v", err)
	}
	h := handler.NewHandler(svc, pages, logger, notice)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.NewRouter(h, cfg, metrics),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	logger.WithFields(logrus.Fields{
		"auth":  cfg.AuthEnabled(),
		"email": cfg.EmailEnabled(),
	}).Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}

// newProfileSource builds the configured profile source and a func releasing its resources
func newProfileSource(cfg *config.Config, logger *logrus.Logger) (repository.ProfileSource, func()) {
	if cfg.ProfileSource != config.SourcePostgres {
		return repository.NewGraphSource(cfg), func() {}
	}

	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	return repository.NewSQLSource(db), func() { db.Close() }
}
