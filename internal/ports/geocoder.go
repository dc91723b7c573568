package ports

import (
	"context"

	"campus-ride-service/internal/domain"
)

// Contract for resolving a free-text place name to coordinates.
//
// ok == false with a nil error means the address is unknown; this is an
// expected outcome, not a failure. A non-nil error is only returned when the
// backend itself could not be reached or answered badly.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (coords domain.Coordinates, ok bool, err error)
}

// Persistent address -> coordinate store used to avoid repeated lookups.
// Address keys are expected to be normalized by the caller.
type GeocodeCache interface {
	Get(ctx context.Context, address string) (domain.Coordinates, bool, error)
	Put(ctx context.Context, address string, coords domain.Coordinates) error
}
