package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campus-ride-service/internal/domain"
	"campus-ride-service/internal/platform/obs"
)

// Postgres-backed implementation of the PitStopRepository port.
type PostgresPitStopRepository struct{ DB *sql.DB }

func NewPostgresPitStopRepository(db *sql.DB) *PostgresPitStopRepository {
	return &PostgresPitStopRepository{DB: db}
}

// Return all pit stops ordered by id.
func (r *PostgresPitStopRepository) ListPitStops(ctx context.Context) (_ []domain.PitStop, err error) {
	defer obs.Time(ctx, "pitstops.ListPitStops")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres pit stop repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		category,
		discount,
		lon,
		lat,
		geohash
	FROM pit_stops
	ORDER BY id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pit stops: query pit_stops table: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.PitStop, 0, 64)
	for rows.Next() {
		var p domain.PitStop
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Discount, &p.Coords.Lon, &p.Coords.Lat, &p.Geohash); err != nil {
			return nil, fmt.Errorf("list pit stops: scan row: %w", err)
		}
		stops = append(stops, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pit stops: row iteration: %w", err)
	}

	return stops, nil
}
