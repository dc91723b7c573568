package services

import "math"

const (
	averageSpeedMph = 30.0
	// Fixed allowance for boarding and stops.
	baseOverheadMinutes = 5.0
)

// EstimateDurationMinutes converts a distance into whole travel minutes at a
// constant average speed plus a fixed overhead. Zero distance yields 5.
func EstimateDurationMinutes(distanceMiles float64) float64 {
	return math.Round((distanceMiles/averageSpeedMph)*60 + baseOverheadMinutes)
}
