package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "debtmates-backend/internal/api/http"
	"debtmates-backend/internal/config"
	"debtmates-backend/internal/logger"
	"debtmates-backend/internal/repository/postgres"
	"debtmates-backend/internal/security"
	"debtmates-backend/internal/service"
	"debtmates-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting DebtMates Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Storage
	slipStorage, err := storage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize slip storage", "error", err, "upload_dir", cfg.Storage.UploadDir)
		log.Fatalf("Failed to initialize slip storage: %v", err)
	}
	logger.Info("Slip storage initialized", "upload_dir", cfg.Storage.UploadDir)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager, emailSvc)
	groupSvc := service.NewGroupService(store.GroupRepository, store.UserRepository, store.NotificationRepository)
	debtSvc := service.NewDebtService(store.DebtRepository, store.GroupRepository, store.NotificationRepository, emailSvc, cfg.Settlement.Tolerance)
	rotationSvc := service.NewRotationService(store.RotationalRepository, store.UserRepository, store.NotificationRepository, slipStorage, emailSvc)
	savingsSvc := service.NewSavingsService(store.SavingPlanRepository, store.UserRepository, store.NotificationRepository, emailSvc)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	adminSvc := service.NewAdminService(store.UserRepository)

	// Initialize Router
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(authSvc),
		Groups:       httpapi.NewGroupHandler(groupSvc),
		Debts:        httpapi.NewDebtHandler(debtSvc),
		Rotations:    httpapi.NewRotationHandler(rotationSvc, cfg.Storage.MaxFileSize),
		Savings:      httpapi.NewSavingsHandler(savingsSvc),
		Notes:        httpapi.NewNotificationHandler(noteSvc),
		Admin:        httpapi.NewAdminHandler(adminSvc),
		TokenManager: tokenManager,
	})

	// Middleware chain: panic recovery wraps everything, CORS sits closest
	// to the router.
	handler := httpapi.PanicRecovery(httpapi.NewCORS(cfg)(router))

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("HTTP server stopped. Goodbye!")
}
