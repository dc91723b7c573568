package geocode

import (
	"context"

	"campus-ride-service/internal/domain"
	"campus-ride-service/internal/ports"

	"go.uber.org/zap"
)

// CachingGeocoder serves lookups from a GeocodeCache and fills it on a miss.
// Cache failures are logged and never fail the lookup. Unknown addresses are
// not cached so a later backend update can still resolve them.
type CachingGeocoder struct {
	next  ports.Geocoder
	cache ports.GeocodeCache
}

func NewCachingGeocoder(next ports.Geocoder, cache ports.GeocodeCache) *CachingGeocoder {
	return &CachingGeocoder{next: next, cache: cache}
}

func (c *CachingGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	key := normalizeAddress(address)
	if key == "" {
		return domain.Coordinates{}, false, nil
	}

	coords, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		zap.L().Warn("geocode cache read failed", zap.String("address", key), zap.Error(err))
	} else if ok {
		return coords, true, nil
	}

	coords, ok, err = c.next.Geocode(ctx, address)
	if err != nil || !ok {
		return coords, ok, err
	}

	if err := c.cache.Put(ctx, key, coords); err != nil {
		zap.L().Warn("geocode cache write failed", zap.String("address", key), zap.Error(err))
	}
	return coords, true, nil
}
