package repositories

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"campus-ride-service/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepoTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func sampleOffer(t *testing.T) *domain.RideOffer {
	t.Helper()
	start, err := domain.NewWaypoint(domain.WaypointStart, 37.4275, -122.1697, "Stanford")
	require.NoError(t, err)
	end, err := domain.NewWaypoint(domain.WaypointEnd, 37.4419, -122.1430, "Palo Alto")
	require.NoError(t, err)

	return &domain.RideOffer{
		ID:              uuid.MustParse("550e8400-e29b-41d4-a716-446655440001"),
		DriverID:        "driver-7",
		Waypoints:       []domain.Waypoint{start, end},
		DepartAt:        time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC),
		SeatsTotal:      3,
		PricePerSeat:    4.725,
		DistanceMiles:   2.3,
		DurationMinutes: 10,
		CreatedAt:       time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestInitSchema(t *testing.T) {
	db, mock := setupRepoTest(t)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS pit_stops").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS ride_offers").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS geocode_cache").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, InitSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitSchemaRollsBackOnFailure(t *testing.T) {
	db, mock := setupRepoTest(t)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS pit_stops").WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	err := InitSchema(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement #1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedPitStopsFromJSON(t *testing.T) {
	db, mock := setupRepoTest(t)

	path := filepath.Join(t.TempDir(), "pit_stops.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": " Coupa Cafe ", "category": "coffee", "discount": "10% off", "lat": 37.4292, "lon": -122.1381}
	]`), 0o600))

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO pit_stops")
	prep.ExpectExec().
		WithArgs("Coupa Cafe", "coffee", "10% off", -122.1381, 37.4292, "9q9hutv").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	n, err := SeedPitStopsFromJSON(context.Background(), db, path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedPitStopsValidation(t *testing.T) {
	db, mock := setupRepoTest(t)

	_, err := SeedPitStops(context.Background(), db, []PitStopSeed{{Name: "", Lat: 1, Lon: 1}})
	require.Error(t, err)

	_, err = SeedPitStops(context.Background(), db, []PitStopSeed{{Name: "Nowhere", Lat: 91, Lon: 0}})
	require.ErrorIs(t, err, domain.ErrCoordinateOutOfRange)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPitStops(t *testing.T) {
	db, mock := setupRepoTest(t)

	rows := sqlmock.NewRows([]string{"id", "name", "category", "discount", "lon", "lat", "geohash"}).
		AddRow(int64(1), "Coupa Cafe", "coffee", "10% off", -122.1381, 37.4292, "9q9hutv").
		AddRow(int64(2), "Philz", "coffee", "", -122.1460, 37.4430, "9q9hvh5")
	mock.ExpectQuery(`(?s)SELECT\s+id,\s+name.+geohash\s+FROM pit_stops`).WillReturnRows(rows)

	stops, err := NewPostgresPitStopRepository(db).ListPitStops(context.Background())
	require.NoError(t, err)
	require.Len(t, stops, 2)
	assert.Equal(t, domain.PitStop{
		ID:       1,
		Name:     "Coupa Cafe",
		Category: "coffee",
		Discount: "10% off",
		Coords:   domain.Coordinates{Lon: -122.1381, Lat: 37.4292},
		Geohash:  "9q9hutv",
	}, stops[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPitStopsQueryError(t *testing.T) {
	db, mock := setupRepoTest(t)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("database error"))

	_, err := NewPostgresPitStopRepository(db).ListPitStops(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list pit stops")
}

func TestSaveRideOffer(t *testing.T) {
	db, mock := setupRepoTest(t)
	offer := sampleOffer(t)

	mock.ExpectExec("INSERT INTO ride_offers").
		WithArgs(offer.ID, "driver-7", sqlmock.AnyArg(), offer.DepartAt, 3, 4.725, 2.3, 10.0, offer.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewPostgresRideRepository(db).SaveRideOffer(context.Background(), offer))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRideOffer(t *testing.T) {
	want := sampleOffer(t)
	route, err := encodeWaypoints(want.Waypoints)
	require.NoError(t, err)

	testCases := []struct {
		name       string
		mockSetup  func(mock sqlmock.Sqlmock)
		assertFunc func(t *testing.T, got *domain.RideOffer, err error)
	}{
		{
			name: "Success",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"driver_id", "route", "depart_at", "seats_total", "price_per_seat",
					"distance_miles", "duration_minutes", "created_at",
				}).AddRow("driver-7", route, want.DepartAt, 3, 4.725, 2.3, 10.0, want.CreatedAt)
				mock.ExpectQuery("FROM ride_offers").WithArgs(want.ID).WillReturnRows(rows)
			},
			assertFunc: func(t *testing.T, got *domain.RideOffer, err error) {
				require.NoError(t, err)
				assert.Equal(t, want, got)
			},
		},
		{
			name: "Not Found",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM ride_offers").WithArgs(want.ID).WillReturnError(sql.ErrNoRows)
			},
			assertFunc: func(t *testing.T, got *domain.RideOffer, err error) {
				assert.ErrorIs(t, err, domain.ErrRideNotFound)
				assert.Nil(t, got)
			},
		},
		{
			name: "Corrupt Route",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"driver_id", "route", "depart_at", "seats_total", "price_per_seat",
					"distance_miles", "duration_minutes", "created_at",
				}).AddRow("driver-7", []byte(`{"oops":true}`), want.DepartAt, 3, 4.725, 2.3, 10.0, want.CreatedAt)
				mock.ExpectQuery("FROM ride_offers").WithArgs(want.ID).WillReturnRows(rows)
			},
			assertFunc: func(t *testing.T, got *domain.RideOffer, err error) {
				assert.Error(t, err)
				assert.Nil(t, got)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := setupRepoTest(t)
			tc.mockSetup(mock)

			got, err := NewPostgresRideRepository(db).GetRideOffer(context.Background(), want.ID)
			tc.assertFunc(t, got, err)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
