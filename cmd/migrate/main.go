package main

import (
	"flag"
	"log"
	"os"

	"github.com/inventorypos/salesdesk/internal/config"
	"github.com/inventorypos/salesdesk/internal/logger"
	"github.com/inventorypos/salesdesk/internal/postgres"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command line flags
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	flag.Parse()

	_ = godotenv.Load()

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

	if *dryRun {
		logger.Info("Dry run mode - printing migration SQL without executing")
		db := postgres.NewFromSQLX(nil, logger)
		if err := db.Migrate(true, os.Stdout); err != nil {
			logger.Fatalw("Failed to print migrations", "error", err)
		}
		return
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)
	db, err := postgres.NewDB(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.Migrate(false, os.Stdout); err != nil {
		logger.Fatalw("Failed to apply migrations", "error", err)
	}
	logger.Info("Migration completed successfully")
}
