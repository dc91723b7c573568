package geocode

import (
	"context"
	"errors"
	"sync"
	"testing"

	"campus-ride-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu      sync.Mutex
	m       map[string]domain.Coordinates
	getErr  error
	putErr  error
	putKeys []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{m: make(map[string]domain.Coordinates)}
}

func (c *memoryCache) Get(_ context.Context, address string) (domain.Coordinates, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return domain.Coordinates{}, false, c.getErr
	}
	v, ok := c.m[address]
	return v, ok, nil
}

func (c *memoryCache) Put(_ context.Context, address string, coords domain.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.putKeys = append(c.putKeys, address)
	if c.putErr != nil {
		return c.putErr
	}
	c.m[address] = coords
	return nil
}

func TestCachingGeocoderHitsBackendOnce(t *testing.T) {
	quad := domain.Coordinates{Lat: 37.4275, Lon: -122.1697}
	backend := NewMockGeocoder([]MockEntry{{Address: "Stanford  Main Quad", Coords: quad}})
	cache := newMemoryCache()
	g := NewCachingGeocoder(backend, cache)

	for _, addr := range []string{"Stanford  Main Quad", "stanford main quad ", "STANFORD MAIN QUAD"} {
		got, ok, err := g.Geocode(context.Background(), addr)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, quad, got)
	}

	assert.Equal(t, 1, backend.Calls("Stanford  Main Quad"))
	assert.Zero(t, backend.Calls("stanford main quad"))
	assert.Equal(t, []string{"stanford main quad"}, cache.putKeys)
}

func TestCachingGeocoderPassesAddressThroughUnchanged(t *testing.T) {
	static := NewStaticGeocoder(DefaultPlaces)
	g := NewCachingGeocoder(static, newMemoryCache())

	for _, addr := range []string{"San   Jose", "123 Main St, San Jose", "Stanford"} {
		wantCoords, wantOK, _ := static.Geocode(context.Background(), addr)

		got, ok, err := g.Geocode(context.Background(), addr)
		require.NoError(t, err)
		assert.Equal(t, wantOK, ok, addr)
		assert.Equal(t, wantCoords, got, addr)
	}

	_, ok, err := g.Geocode(context.Background(), "San   Jose")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCachingGeocoderDoesNotCacheNotFound(t *testing.T) {
	backend := NewMockGeocoder(nil)
	cache := newMemoryCache()
	g := NewCachingGeocoder(backend, cache)

	for i := 0; i < 2; i++ {
		_, ok, err := g.Geocode(context.Background(), "narnia")
		require.NoError(t, err)
		assert.False(t, ok)
	}

	assert.Equal(t, 2, backend.Calls("narnia"))
	assert.Empty(t, cache.putKeys)
}

func TestCachingGeocoderIgnoresCacheFailures(t *testing.T) {
	quad := domain.Coordinates{Lat: 37.4275, Lon: -122.1697}
	backend := NewMockGeocoder([]MockEntry{{Address: "stanford", Coords: quad}})
	cache := newMemoryCache()
	cache.getErr = errors.New("connection refused")
	cache.putErr = errors.New("connection refused")

	got, ok, err := NewCachingGeocoder(backend, cache).Geocode(context.Background(), "Stanford")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, quad, got)
}

func TestCachingGeocoderPropagatesBackendErrors(t *testing.T) {
	errDown := errors.New("down")
	backend := NewMockGeocoder([]MockEntry{{Address: "stanford", Err: errDown}})

	_, ok, err := NewCachingGeocoder(backend, newMemoryCache()).Geocode(context.Background(), "stanford")
	assert.False(t, ok)
	require.ErrorIs(t, err, errDown)
}
