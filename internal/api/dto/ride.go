package dto

import (
	"time"

	"campus-ride-service/internal/domain"
)

type OfferRideRequest struct {
	DriverID  string            `json:"driver_id" binding:"required"`
	Waypoints []WaypointRequest `json:"waypoints" binding:"required,min=2,dive"`
	DepartAt  time.Time         `json:"depart_at" binding:"required"`
	Seats     int               `json:"seats" binding:"required"`
}

type RideOfferResponse struct {
	ID              string             `json:"id"`
	DriverID        string             `json:"driver_id"`
	Waypoints       []WaypointResponse `json:"waypoints"`
	DepartAt        time.Time          `json:"depart_at"`
	SeatsTotal      int                `json:"seats_total"`
	PricePerSeat    float64            `json:"price_per_seat"`
	DistanceMiles   float64            `json:"distance_miles"`
	DurationMinutes float64            `json:"duration_minutes"`
	CreatedAt       time.Time          `json:"created_at"`
}

func NewRideOfferResponse(o *domain.RideOffer) RideOfferResponse {
	return RideOfferResponse{
		ID:              o.ID.String(),
		DriverID:        o.DriverID,
		Waypoints:       FromWaypoints(o.Waypoints),
		DepartAt:        o.DepartAt,
		SeatsTotal:      o.SeatsTotal,
		PricePerSeat:    domain.RoundTo(o.PricePerSeat, 2),
		DistanceMiles:   o.DistanceMiles,
		DurationMinutes: o.DurationMinutes,
		CreatedAt:       o.CreatedAt,
	}
}
