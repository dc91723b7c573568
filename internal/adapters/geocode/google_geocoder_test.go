package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-ride-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func newTestGoogle(t *testing.T, body string) *GoogleGeocoder {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	g, err := NewGoogleGeocoder("AIza-test", maps.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return g
}

func TestGoogleGeocoderReturnsFirstResult(t *testing.T) {
	g := newTestGoogle(t, `{"status":"OK","results":[{"geometry":{"location":{"lat":37.8719,"lng":-122.2585}}}]}`)

	got, ok, err := g.Geocode(context.Background(), "UC Berkeley")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.Coordinates{Lat: 37.8719, Lon: -122.2585}, got)
}

func TestGoogleGeocoderZeroResultsIsNotFound(t *testing.T) {
	g := newTestGoogle(t, `{"status":"ZERO_RESULTS","results":[]}`)

	_, ok, err := g.Geocode(context.Background(), "Narnia")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGoogleGeocoderEmptyAddressSkipsRequest(t *testing.T) {
	g := newTestGoogle(t, `{"status":"REQUEST_DENIED","results":[]}`)

	_, ok, err := g.Geocode(context.Background(), "  ")
	require.NoError(t, err)
	assert.False(t, ok)
}
