package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"campus-ride-service/internal/domain"
	"campus-ride-service/internal/platform/obs"

	"github.com/google/uuid"
)

// Postgres-backed implementation of the RideRepository port.
type PostgresRideRepository struct{ DB *sql.DB }

func NewPostgresRideRepository(db *sql.DB) *PostgresRideRepository {
	return &PostgresRideRepository{DB: db}
}

type waypointRecord struct {
	Kind  domain.WaypointKind `json:"kind"`
	Lat   float64             `json:"lat"`
	Lon   float64             `json:"lon"`
	Label string              `json:"label,omitempty"`
}

func encodeWaypoints(wps []domain.Waypoint) ([]byte, error) {
	recs := make([]waypointRecord, 0, len(wps))
	for _, w := range wps {
		recs = append(recs, waypointRecord{Kind: w.Kind, Lat: w.Coords.Lat, Lon: w.Coords.Lon, Label: w.Label})
	}
	return json.Marshal(recs)
}

func decodeWaypoints(raw []byte) ([]domain.Waypoint, error) {
	var recs []waypointRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, err
	}
	wps := make([]domain.Waypoint, 0, len(recs))
	for _, r := range recs {
		w, err := domain.NewWaypoint(r.Kind, r.Lat, r.Lon, r.Label)
		if err != nil {
			return nil, err
		}
		wps = append(wps, w)
	}
	return wps, nil
}

func (r *PostgresRideRepository) SaveRideOffer(ctx context.Context, offer *domain.RideOffer) (err error) {
	defer obs.Time(ctx, "rides.SaveRideOffer")(&err)

	if r.DB == nil {
		return errors.New("postgres ride repository: DB is nil")
	}
	if offer == nil {
		return errors.New("save ride offer: offer is nil")
	}

	route, err := encodeWaypoints(offer.Waypoints)
	if err != nil {
		return fmt.Errorf("save ride offer: encode route: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, `
	INSERT INTO ride_offers (
		id,
		driver_id,
		route,
		depart_at,
		seats_total,
		price_per_seat,
		distance_miles,
		duration_minutes,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`,
		offer.ID,
		offer.DriverID,
		route,
		offer.DepartAt,
		offer.SeatsTotal,
		offer.PricePerSeat,
		offer.DistanceMiles,
		offer.DurationMinutes,
		offer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save ride offer id=%s: %w", offer.ID, err)
	}

	return nil
}

func (r *PostgresRideRepository) GetRideOffer(ctx context.Context, id uuid.UUID) (_ *domain.RideOffer, err error) {
	defer obs.Time(ctx, "rides.GetRideOffer")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres ride repository: DB is nil")
	}

	var (
		offer = domain.RideOffer{ID: id}
		route []byte
	)
	err = r.DB.QueryRowContext(ctx, `
	SELECT
		driver_id,
		route,
		depart_at,
		seats_total,
		price_per_seat,
		distance_miles,
		duration_minutes,
		created_at
	FROM ride_offers
	WHERE id = $1;
	`, id).Scan(
		&offer.DriverID,
		&route,
		&offer.DepartAt,
		&offer.SeatsTotal,
		&offer.PricePerSeat,
		&offer.DistanceMiles,
		&offer.DurationMinutes,
		&offer.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get ride offer id=%s: %w", id, err)
	}

	offer.Waypoints, err = decodeWaypoints(route)
	if err != nil {
		return nil, fmt.Errorf("get ride offer id=%s: decode route: %w", id, err)
	}

	return &offer, nil
}
