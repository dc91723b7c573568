package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"campus-ride-service/internal/domain"

	"github.com/mmcloughlin/geohash"
)

// Geohash precision stored alongside each pit stop (cells of roughly 150 m).
const pitStopGeohashPrecision = 7

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPitStopsQuery := `
	CREATE TABLE IF NOT EXISTS pit_stops (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL DEFAULT '',
		discount TEXT NOT NULL DEFAULT '',
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		geohash TEXT NOT NULL
	);
	`

	createRideOffersQuery := `
	CREATE TABLE IF NOT EXISTS ride_offers (
		id UUID PRIMARY KEY,
		driver_id TEXT NOT NULL,
		route JSONB NOT NULL,
		depart_at TIMESTAMPTZ NOT NULL,
		seats_total INTEGER NOT NULL CHECK (seats_total > 0),
		price_per_seat DOUBLE PRECISION NOT NULL,
		distance_miles DOUBLE PRECISION NOT NULL,
		duration_minutes DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_ride_offers_depart_at
	ON ride_offers(depart_at);
	`

	statements := []string{
		createPitStopsQuery,
		createRideOffersQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type PitStopSeed struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Discount string  `json:"discount"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// Populate the pit_stops table from a JSON file. Existing rows with the same
// name are updated in place.
func SeedPitStopsFromJSON(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed pit stops: read %q: %w", jsonPath, err)
	}

	var data []PitStopSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed pit stops: parse json: %w", err)
	}

	return SeedPitStops(ctx, db, data)
}

func SeedPitStops(ctx context.Context, db *sql.DB, data []PitStopSeed) (int, error) {
	if db == nil {
		return 0, errors.New("seed pit stops: DB is nil")
	}

	rows := make([]PitStopSeed, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return 0, fmt.Errorf("seed pit stops: item at index %d: name cannot be empty", i+1)
		}
		c := domain.Coordinates{Lon: item.Lon, Lat: item.Lat}
		if err := c.Validate(); err != nil {
			return 0, fmt.Errorf("seed pit stops: item %q: %w", name, err)
		}
		item.Name = name
		rows = append(rows, item)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed pit stops: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO pit_stops (name, category, discount, lon, lat, geohash)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (name) DO UPDATE
	SET category = EXCLUDED.category,
		discount = EXCLUDED.discount,
		lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		geohash = EXCLUDED.geohash;
	`)
	if err != nil {
		return 0, fmt.Errorf("seed pit stops: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range rows {
		gh := geohash.EncodeWithPrecision(p.Lat, p.Lon, pitStopGeohashPrecision)
		if _, err := stmt.ExecContext(ctx, p.Name, p.Category, p.Discount, p.Lon, p.Lat, gh); err != nil {
			return 0, fmt.Errorf("seed pit stops: insert %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed pit stops: commit tx: %w", err)
	}

	return len(rows), nil
}
