package dto

import "campus-ride-service/internal/domain"

type PitStopSearchRequest struct {
	Waypoints   []WaypointRequest `json:"waypoints" binding:"required,min=2,dive"`
	RadiusMiles float64           `json:"radius_miles"`
}

type PitStopResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category,omitempty"`
	Discount      string  `json:"discount,omitempty"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	DistanceMiles float64 `json:"distance_miles"`
}

type ListPitStopResponse struct {
	PitStops []PitStopResponse `json:"pit_stops"`
}

func NewListPitStopResponse(matches []domain.PitStopMatch) ListPitStopResponse {
	out := make([]PitStopResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, PitStopResponse{
			ID:            m.PitStop.ID,
			Name:          m.PitStop.Name,
			Category:      m.PitStop.Category,
			Discount:      m.PitStop.Discount,
			Lat:           m.PitStop.Coords.Lat,
			Lon:           m.PitStop.Coords.Lon,
			DistanceMiles: domain.RoundTo(m.DistanceMiles, 2),
		})
	}
	return ListPitStopResponse{PitStops: out}
}
