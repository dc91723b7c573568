package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"campus-ride-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestORS(t *testing.T, h http.HandlerFunc) *ORSGeocoder {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	g, err := NewORSGeocoder("test-key", WithBaseURL(srv.URL), WithRetry(3, time.Millisecond))
	require.NoError(t, err)
	return g
}

func TestORSGeocoderParsesFirstFeature(t *testing.T) {
	g := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "stanford university", r.URL.Query().Get("text"))
		assert.Equal(t, "US", r.URL.Query().Get("boundary.country"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[-122.1697,37.4275]}}]}`))
	})

	got, ok, err := g.Geocode(context.Background(), "  Stanford   University ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.Coordinates{Lon: -122.1697, Lat: 37.4275}, got)
}

func TestORSGeocoderNoFeaturesIsNotFound(t *testing.T) {
	g := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"features":[]}`))
	})

	_, ok, err := g.Geocode(context.Background(), "Narnia")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestORSGeocoderRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	g := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[-122.143,37.4419]}}]}`))
	})

	got, ok, err := g.Geocode(context.Background(), "palo alto")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int32(3), calls.Load())
	assert.InDelta(t, 37.4419, got.Lat, 1e-9)
}

func TestORSGeocoderDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	g := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad key", http.StatusForbidden)
	})

	_, ok, err := g.Geocode(context.Background(), "palo alto")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, int32(1), calls.Load())

	var he *httpStatusError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestORSGeocoderRejectsOutOfRangeCoordinates(t *testing.T) {
	g := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[-122.1,137.4]}}]}`))
	})

	_, _, err := g.Geocode(context.Background(), "somewhere")
	require.ErrorIs(t, err, domain.ErrCoordinateOutOfRange)
}

func TestNewORSGeocoderRequiresKey(t *testing.T) {
	_, err := NewORSGeocoder(" ")
	require.Error(t, err)
}
