package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/invoiceai/invoiceai/internal/config"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/postgres"
	"github.com/invoiceai/invoiceai/internal/sentry"
)

func main() {
	// Parse command line flags
	direction := flag.String("direction", "up", "Migration direction: up or down")
	steps := flag.Int("steps", 1, "Number of migrations to roll back when direction is down")
	flag.Parse()

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)

	db, err := postgres.NewDB(cfg, logger, sentry.NewSentryService(cfg, logger))
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	switch *direction {
	case "up":
		logger.Info("Running database migrations...")
		err = postgres.MigrateUp(db, logger)
	case "down":
		logger.Infow("Rolling back database migrations...", "steps", *steps)
		err = postgres.MigrateDown(db, logger, *steps)
	default:
		logger.Fatalw("Unknown migration direction", "direction", *direction)
	}
	if err != nil {
		logger.Fatalw("Migration failed", "error", err)
	}

	fmt.Println("Migration process completed")
}
