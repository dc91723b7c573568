package ports

import (
	"context"

	"campus-ride-service/internal/domain"
)

// Port: a boundary for retrieving discount-partner pit stops.
type PitStopRepository interface {
	ListPitStops(ctx context.Context) ([]domain.PitStop, error)
}
