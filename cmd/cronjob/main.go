package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"carrental-backend/internal/config"
	"carrental-backend/internal/finance"
	"carrental-backend/internal/jobs"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository/mongodb"
	"carrental-backend/internal/scheduler"
	"carrental-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'daily-revenue', 'all-daily')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting car rental cronjob runner...", "log_level", cfg.Log.Level)

	if cfg.Storage.Type != config.StorageMongo {
		log.Fatalf("Cronjob runner needs mongo storage, got %q", cfg.Storage.Type)
	}

	// Initialize Database
	logger.Info("Connecting to database...", "database", cfg.Database.Name)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DatabaseTimeout())
	client, err := mongodb.Connect(ctx, cfg.Database.URI, cfg.DatabaseTimeout())
	cancel()
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.DatabaseTimeout())
		defer cancel()
		client.Disconnect(ctx)
	}()
	logger.Info("Database connection established")

	// Initialize Repositories
	store := mongodb.NewStore(client.Database(cfg.Database.Name))

	// Initialize Services
	engine := finance.NewEngine(cfg.FinanceEngineConfig())
	jobServices := &jobs.Services{
		Report:       service.NewReportService(store.BookingRepository, engine),
		Notification: service.NewNotificationService(store.NotificationRepository),
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store, jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "daily-revenue":
		jobRunner.SendDailyRevenueSummaries()
	case "all-daily":
		jobRunner.RunAllDailyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - daily-revenue\n")
		fmt.Printf("  - all-daily\n")
		os.Exit(1)
	}
}
