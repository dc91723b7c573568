package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRideNotFound     = errors.New("ride offer not found")
	ErrInvalidRideOffer = errors.New("invalid ride offer")
)

const MaxSeatsPerRide = 8

// RideOffer is a driver's published ride. PricePerSeat is the unrounded
// PriceBreakdown.Total captured when the offer was submitted.
type RideOffer struct {
	ID              uuid.UUID
	DriverID        string
	Waypoints       []Waypoint
	DepartAt        time.Time
	SeatsTotal      int
	PricePerSeat    float64
	DistanceMiles   float64
	DurationMinutes float64
	CreatedAt       time.Time
}

// NewRideOffer snapshots a quote into a ride offer.
func NewRideOffer(driverID string, q Quote, departAt time.Time, seats int, now time.Time) *RideOffer {
	return &RideOffer{
		ID:              uuid.New(),
		DriverID:        driverID,
		Waypoints:       q.Route.Points(),
		DepartAt:        departAt.UTC(),
		SeatsTotal:      seats,
		PricePerSeat:    q.Price.Total,
		DistanceMiles:   q.Estimate.DistanceMiles,
		DurationMinutes: q.Estimate.DurationMinutes,
		CreatedAt:       now.UTC(),
	}
}
