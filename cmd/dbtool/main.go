package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"campus-ride-service/internal/adapters/repositories"
	"campus-ride-service/internal/config"
	"campus-ride-service/internal/platform/db"
	"campus-ride-service/internal/platform/obs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found (using environment variables)")
	}

	log, err := obs.NewLogger(config.Get("APP_ENV", "development"), config.Get("LOG_LEVEL", "info"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	seedPath := flag.String("seed", config.Get("SEED_PATH", "data/seeds/pit_stops.json"), "pit stop seed file")
	skipSeed := flag.Bool("schema-only", false, "create tables without seeding pit stops")
	flag.Parse()

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	database, err := db.Open(ctx, databaseURL, db.DefaultPoolConfig())
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer database.Close()

	if err := initAndSeed(ctx, log, database, *seedPath, *skipSeed); err != nil {
		log.Fatal("dbtool failed", zap.Error(err))
	}
}

func initAndSeed(ctx context.Context, log *zap.Logger, database *sql.DB, seedPath string, skipSeed bool) error {
	log.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, database); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Info("schema ready")

	if skipSeed {
		return nil
	}

	log.Info("seeding pit stops", zap.String("path", seedPath))
	n, err := repositories.SeedPitStopsFromJSON(ctx, database, seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Info("seeding complete", zap.Int("pit_stops", n))

	return nil
}
