package dto

import (
	"fmt"

	"campus-ride-service/internal/domain"
)

type WaypointRequest struct {
	Kind  string   `json:"kind" binding:"required"`
	Lat   *float64 `json:"lat" binding:"required"`
	Lon   *float64 `json:"lon" binding:"required"`
	Label string   `json:"label"`
}

type WaypointResponse struct {
	Kind  string  `json:"kind"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label,omitempty"`
}

// ToWaypoints validates and converts request waypoints, keeping their order.
func ToWaypoints(in []WaypointRequest) ([]domain.Waypoint, error) {
	out := make([]domain.Waypoint, 0, len(in))
	for i, w := range in {
		wp, err := domain.NewWaypoint(domain.WaypointKind(w.Kind), *w.Lat, *w.Lon, w.Label)
		if err != nil {
			return nil, fmt.Errorf("waypoint %d: %w", i, err)
		}
		out = append(out, wp)
	}
	return out, nil
}

func FromWaypoints(in []domain.Waypoint) []WaypointResponse {
	out := make([]WaypointResponse, 0, len(in))
	for _, w := range in {
		out = append(out, WaypointResponse{Kind: string(w.Kind), Lat: w.Coords.Lat, Lon: w.Coords.Lon, Label: w.Label})
	}
	return out
}

type GeocodeResponse struct {
	Query string  `json:"query"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}
