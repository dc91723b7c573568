package ports

import (
	"context"

	"campus-ride-service/internal/domain"
	"github.com/google/uuid"
)

// Port: persistence for ride offers and their price per seat.
type RideRepository interface {
	SaveRideOffer(ctx context.Context, offer *domain.RideOffer) error
	// Return domain.ErrRideNotFound when no offer has the given id.
	GetRideOffer(ctx context.Context, id uuid.UUID) (*domain.RideOffer, error)
}

// Notifies other systems that a ride became available.
type RideEventPublisher interface {
	PublishRideOffered(ctx context.Context, offer *domain.RideOffer) error
	Close() error
}
