package services

import (
	"math"

	"campus-ride-service/internal/domain"
)

const (
	earthRadiusMiles = 3958.8

	// Roads are longer than straight lines; each leg is scaled by this factor.
	routingInflationFactor = 1.3
)

// EstimateDistanceMiles approximates road distance over ordered waypoints.
//
// The caller passes points already in travel order with reference waypoints
// removed (see domain.Route.Points). Each consecutive leg is measured with the
// Haversine formula, inflated by the routing factor, and the sum is rounded to
// one decimal place. Fewer than two points yield 0.
func EstimateDistanceMiles(points []domain.Waypoint) float64 {
	if len(points) < 2 {
		return 0
	}

	total := 0.0
	for i := 1; i < len(points); i++ {
		total += haversineMiles(points[i-1].Coords, points[i].Coords) * routingInflationFactor
	}

	return domain.RoundTo(total, 1)
}

// EstimateRouteDistance measures a validated route.
func EstimateRouteDistance(route domain.Route) float64 {
	return EstimateDistanceMiles(route.Points())
}

// haversineMiles returns the great-circle distance in miles between two points.
func haversineMiles(a, b domain.Coordinates) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLon := degreesToRadians(b.Lon - a.Lon)

	lat1 := degreesToRadians(a.Lat)
	lat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
