package domain

import "math"

// Per-seat fare derived from a RouteEstimate.
// Total is the unrounded, authoritative amount; use Rounded for display.
type PriceBreakdown struct {
	DistanceComponent float64
	TimeComponent     float64
	BaseFee           float64
	Total             float64
}

// Rounded returns a copy with every monetary field rounded to cents.
func (p PriceBreakdown) Rounded() PriceBreakdown {
	return PriceBreakdown{
		DistanceComponent: RoundTo(p.DistanceComponent, 2),
		TimeComponent:     RoundTo(p.TimeComponent, 2),
		BaseFee:           RoundTo(p.BaseFee, 2),
		Total:             RoundTo(p.Total, 2),
	}
}

// RoundTo rounds half away from zero to the given number of decimal places.
// The scaled value is snapped to 1e-6 first so that binary representation
// error (4.325 stored as 4.32499999...) does not flip the result.
func RoundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	scaled := math.Round(v*p*1e6) / 1e6
	return math.Round(scaled) / p
}

// Quote is the full output of the estimate pipeline for one route.
type Quote struct {
	Route    Route
	Estimate RouteEstimate
	Price    PriceBreakdown
}
