package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"

	"festregistry/config"
	"festregistry/internal/adapters/email"
	"festregistry/internal/adapters/identifier"
	httpdelivery "festregistry/internal/delivery/http"
	"festregistry/internal/delivery/http/controllers"
	"festregistry/internal/delivery/http/middleware"
	"festregistry/internal/domain"
	"festregistry/internal/metrics"
	"festregistry/internal/repository/postgres"
	"festregistry/internal/services"
)

// main wires the explicitly constructed dependencies: one injected
// connection pool shared by all repositories, no global datastore handle.
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), cfg.DBTimeout)
	if err := db.PingContext(pingCtx); err != nil {
		cancelPing()
		logger.Error("database unreachable", "err", err)
		os.Exit(1)
	}
	cancelPing()

	// Repositories
	idGen := identifier.New()
	registrationRepo := postgres.NewRegistrationRepository(db, idGen)
	eventRepo := postgres.NewEventRepository(db)
	statsRepo := postgres.NewSystemStatsRepository(db)
	activityRepo := postgres.NewActivityRepository(db)
	contactRepo := postgres.NewContactRepository(db)

	// Services
	m := metrics.New()
	mailer := email.NewMailer(cfg.Mailer, logger)
	emailService := services.NewEmailService(mailer)
	activityLogger := services.NewActivityLogger(activityRepo, logger)
	registrationService := services.NewRegistrationService(
		registrationRepo, statsRepo, activityLogger, emailService, m, logger, cfg.DBTimeout)
	statsService := services.NewStatsService(registrationRepo, eventRepo, statsRepo, m, cfg.DBTimeout)
	contactService := services.NewContactService(contactRepo, m, cfg.DBTimeout)

	// Delivery
	registrationController := controllers.NewRegistrationController(logger, registrationService)
	statsController := controllers.NewStatsController(logger, statsService)
	contactController := controllers.NewContactController(logger, contactService)

	mux := httpdelivery.NewRouter(registrationController, statsController, contactController, db)
	handler := middleware.CORS(middleware.Logging(logger, middleware.Recover(logger, mux)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	activityLogger.Log(context.Background(), nil, domain.ActivitySystemStarted, map[string]any{
		"environment": cfg.Environment,
		"port":        cfg.Port,
	}, "", "")

	logger.Info("starting registration service", "port", cfg.Port, "environment", cfg.Environment)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
	_ = db.Close()
}
