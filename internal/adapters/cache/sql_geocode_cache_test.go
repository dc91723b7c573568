package cache

import (
	"context"
	"errors"
	"testing"

	"campus-ride-service/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLCache(t *testing.T) (*SQLGeocodeCache, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLGeocodeCache(db), mock
}

func TestSQLGeocodeCacheGet(t *testing.T) {
	testCases := []struct {
		name      string
		mockSetup func(mock sqlmock.Sqlmock)
		wantOK    bool
		wantErr   bool
	}{
		{
			name: "Hit",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT lon, lat\\s+FROM geocode_cache").
					WithArgs("stanford").
					WillReturnRows(sqlmock.NewRows([]string{"lon", "lat"}).AddRow(-122.1697, 37.4275))
			},
			wantOK: true,
		},
		{
			name: "Miss",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT lon, lat\\s+FROM geocode_cache").
					WithArgs("stanford").
					WillReturnRows(sqlmock.NewRows([]string{"lon", "lat"}))
			},
		},
		{
			name: "Database Error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT lon, lat\\s+FROM geocode_cache").
					WithArgs("stanford").
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, mock := setupSQLCache(t)
			tc.mockSetup(mock)

			got, ok, err := c.Get(context.Background(), " stanford ")

			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, domain.Coordinates{Lon: -122.1697, Lat: 37.4275}, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLGeocodeCachePutUpserts(t *testing.T) {
	c, mock := setupSQLCache(t)
	mock.ExpectExec("INSERT INTO geocode_cache").
		WithArgs("palo alto", -122.143, 37.4419).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := c.Put(context.Background(), "palo alto", domain.Coordinates{Lon: -122.143, Lat: 37.4419})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLGeocodeCacheRejectsEmptyKey(t *testing.T) {
	c, mock := setupSQLCache(t)

	require.Error(t, c.Put(context.Background(), "  ", domain.Coordinates{}))

	_, ok, err := c.Get(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLGeocodeCacheNilDB(t *testing.T) {
	c := NewSQLGeocodeCache(nil)
	_, _, err := c.Get(context.Background(), "x")
	require.Error(t, err)
	require.Error(t, c.Put(context.Background(), "x", domain.Coordinates{}))
}
