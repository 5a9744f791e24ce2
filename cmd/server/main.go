package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/joho/godotenv/autoload"
	_ "github.com/lib/pq"

	httpapi "furnirent-backend/internal/api/http"
	"furnirent-backend/internal/config"
	"furnirent-backend/internal/jobs"
	"furnirent-backend/internal/logger"
	"furnirent-backend/internal/repository/postgres"
	"furnirent-backend/internal/scheduler"
	"furnirent-backend/internal/security"
	"furnirent-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	migrationsPath := flag.String("migrations", "file://migrations", "Path to database migrations")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Furnirent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	m, err := migrate.New(*migrationsPath, cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to initialize migrations", "error", err)
		log.Fatalf("Failed to initialize migrations: %v", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database migrations applied")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Initialize Email Service
	emailSvc := service.NewSendGridEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	productSvc := service.NewProductService(store.ProductRepository, store.AuditRepository)
	orderSvc := service.NewOrderService(
		store.OrderRepository,
		store.ProductRepository,
		store.AuditRepository,
		store.NotificationRepository,
		emailSvc,
	)
	transportSvc := service.NewTransportService(
		store.OrderRepository,
		store.AuditRepository,
		store.NotificationRepository,
		emailSvc,
	)
	paymentSvc := service.NewPaymentService(
		store.OrderRepository,
		store.PaymentRepository,
		store.AuditRepository,
		store.NotificationRepository,
		emailSvc,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{
		Email: emailSvc,
		Order: orderSvc,
	}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Auth:         authSvc,
		Product:      productSvc,
		Order:        orderSvc,
		Transport:    transportSvc,
		Payment:      paymentSvc,
		Notification: noteSvc,
		Tokens:       tokenManager,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down...")
	cronScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
