package services

import (
	"math"

	"campus-ride-service/internal/domain"
)

// SuggestPitStopOrder reorders a route's pit stops using a greedy
// nearest-neighbor walk from the start. The end stays fixed.
//
// Each step picks the closest unvisited stop by straight-line distance.
// It does not attempt global optimization; the result is deterministic, with
// ties broken by label and then by the original position.
func SuggestPitStopOrder(route domain.Route) (domain.Route, error) {
	stops := route.PitStops()
	if len(stops) < 2 {
		return route, nil
	}

	remaining := make([]int, len(stops))
	for i := range stops {
		remaining[i] = i
	}

	current := route.Start().Coords
	ordered := make([]domain.Waypoint, 0, len(stops))

	for len(remaining) > 0 {
		bestPos := -1
		minDistance := math.Inf(1)

		// Select next stop by minimum leg length (greedy step).
		for pos, idx := range remaining {
			d := haversineMiles(current, stops[idx].Coords)
			if d < minDistance || (d == minDistance && bestPos >= 0 && stops[idx].Label < stops[remaining[bestPos]].Label) {
				minDistance = d
				bestPos = pos
			}
		}

		best := stops[remaining[bestPos]]
		ordered = append(ordered, best)
		current = best.Coords
		remaining = append(remaining[:bestPos], remaining[bestPos+1:]...)
	}

	return route.WithPitStops(ordered)
}
