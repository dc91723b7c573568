package dto

import "campus-ride-service/internal/domain"

type QuoteRequest struct {
	Waypoints     []WaypointRequest `json:"waypoints" binding:"required,min=2,dive"`
	OptimizeStops bool              `json:"optimize_stops"`
}

type AddressQuoteRequest struct {
	Start    string   `json:"start" binding:"required"`
	End      string   `json:"end" binding:"required"`
	PitStops []string `json:"pit_stops"`
}

type PriceResponse struct {
	DistanceComponent float64 `json:"distance_component"`
	TimeComponent     float64 `json:"time_component"`
	BaseFee           float64 `json:"base_fee"`
	Total             float64 `json:"total"`
}

type QuoteResponse struct {
	Waypoints       []WaypointResponse `json:"waypoints"`
	DistanceMiles   float64            `json:"distance_miles"`
	DurationMinutes float64            `json:"duration_minutes"`
	Price           PriceResponse      `json:"price"`
}

// NewQuoteResponse renders a quote with every monetary field rounded to cents.
func NewQuoteResponse(q domain.Quote) QuoteResponse {
	p := q.Price.Rounded()
	return QuoteResponse{
		Waypoints:       FromWaypoints(q.Route.Points()),
		DistanceMiles:   q.Estimate.DistanceMiles,
		DurationMinutes: q.Estimate.DurationMinutes,
		Price: PriceResponse{
			DistanceComponent: p.DistanceComponent,
			TimeComponent:     p.TimeComponent,
			BaseFee:           p.BaseFee,
			Total:             p.Total,
		},
	}
}
