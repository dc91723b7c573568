package geocode

import (
	"context"
	"errors"

	"campus-ride-service/internal/domain"
	"campus-ride-service/internal/ports"

	"go.uber.org/zap"
)

// FallbackGeocoder asks each backend in turn until one recognises the address.
// A backend error is logged and the next backend is tried; the joined errors
// are returned only when no backend produced a match and at least one failed.
type FallbackGeocoder struct {
	backends []ports.Geocoder
}

func NewFallbackGeocoder(backends ...ports.Geocoder) *FallbackGeocoder {
	return &FallbackGeocoder{backends: backends}
}

func (f *FallbackGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	var errs []error

	for i, b := range f.backends {
		if err := ctx.Err(); err != nil {
			return domain.Coordinates{}, false, err
		}

		c, ok, err := b.Geocode(ctx, address)
		if err != nil {
			zap.L().Warn("geocoder backend failed",
				zap.Int("backend", i),
				zap.String("address", address),
				zap.Error(err),
			)
			errs = append(errs, err)
			continue
		}
		if ok {
			return c, true, nil
		}
	}

	return domain.Coordinates{}, false, errors.Join(errs...)
}
