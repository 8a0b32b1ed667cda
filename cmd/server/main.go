package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "carrental-backend/internal/api/http"
	"carrental-backend/internal/config"
	"carrental-backend/internal/finance"
	"carrental-backend/internal/listing"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/repository/memory"
	"carrental-backend/internal/repository/mongodb"
	"carrental-backend/internal/security"
	"carrental-backend/internal/service"
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
	logger.Info("Starting car rental backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())

	// Initialize storage
	store, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", "type", cfg.Storage.Type, "error", err)
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer closeStore()

	// Initialize Services
	engine := finance.NewEngine(cfg.FinanceEngineConfig())
	logger.Info("Finance configuration", "currency_places", engine.Config().CurrencyPlaces, "rounding", engine.Config().Rounding)

	handler := httpapi.NewHandler(
		service.NewListService(store.Lists, listing.Default(engine)),
		service.NewBookingService(store, engine),
		service.NewQuoteService(engine),
		service.NewReportService(store.BookingRepository, engine),
		service.NewNotificationService(store.NotificationRepository),
	)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer)
	router := httpapi.NewRouter(handler, httpapi.NewAuthMiddleware(tokenManager))
	logger.Debug("HTTP routes registered", "read_timeout_s", cfg.Server.ReadTimeoutSeconds, "write_timeout_s", cfg.Server.WriteTimeoutSeconds)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped. Goodbye!")
}

// openStore returns the repositories for the configured storage type and a
// function releasing them.
func openStore(cfg *config.Config) (*repository.Store, func(), error) {
	if cfg.Storage.Type == config.StorageMemory {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewStore(memory.NewExecutor()), func() {}, nil
	}

	logger.Info("Connecting to database...", "database", cfg.Database.Name)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DatabaseTimeout())
	defer cancel()
	client, err := mongodb.Connect(ctx, cfg.Database.URI, cfg.DatabaseTimeout())
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection established")

	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.DatabaseTimeout())
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Error("Failed to disconnect from database", "error", err)
		}
	}
	return mongodb.NewStore(client.Database(cfg.Database.Name)), closeFn, nil
}
