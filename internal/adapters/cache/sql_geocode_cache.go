package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"campus-ride-service/internal/domain"
	"campus-ride-service/internal/platform/obs"
)

// SQLGeocodeCache is a Postgres-backed cache mapping normalized addresses to coordinates.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch cached coordinates for one address.
func (s *SQLGeocodeCache) Get(ctx context.Context, address string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.sql.Get")(&err)

	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Coordinates{}, false, nil
	}

	var c domain.Coordinates
	err = s.DB.QueryRowContext(ctx, `
	SELECT lon, lat
	FROM geocode_cache
	WHERE address = $1;
	`, address).Scan(&c.Lon, &c.Lat)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return c, true, nil
}

// Store an address -> coordinate mapping, replacing any previous entry.
func (s *SQLGeocodeCache) Put(ctx context.Context, address string, c domain.Coordinates) (err error) {
	defer obs.Time(ctx, "geocode.cache.sql.Put")(&err)

	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return fmt.Errorf("insert geocode cache: empty address key")
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO geocode_cache (address, lon, lat, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (address) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		updated_at = EXCLUDED.updated_at;
	`, address, c.Lon, c.Lat)
	if err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}

	return nil
}
