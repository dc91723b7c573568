package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wp(kind WaypointKind, lat, lon float64, label string) Waypoint {
	return Waypoint{Kind: kind, Coords: Coordinates{Lat: lat, Lon: lon}, Label: label}
}

func TestNewRouteOrdersWaypoints(t *testing.T) {
	route, err := NewRoute([]Waypoint{
		wp(WaypointPitStop, 37.43, -122.14, "coffee"),
		wp(WaypointEnd, 37.4419, -122.1430, "downtown"),
		wp(WaypointReference, 37.40, -122.10, "landmark"),
		wp(WaypointPitStop, 37.44, -122.15, "bakery"),
		wp(WaypointStart, 37.4275, -122.1697, "campus"),
	})
	require.NoError(t, err)

	labels := []string{}
	for _, p := range route.Points() {
		labels = append(labels, p.Label)
	}
	assert.Equal(t, []string{"campus", "coffee", "bakery", "downtown"}, labels)
	require.Len(t, route.References(), 1)
	assert.Equal(t, "landmark", route.References()[0].Label)
}

func TestNewRouteRejectsBadShapes(t *testing.T) {
	start := wp(WaypointStart, 1, 1, "s")
	end := wp(WaypointEnd, 2, 2, "e")

	tests := []struct {
		name string
		in   []Waypoint
		want error
	}{
		{"empty", nil, ErrMissingStart},
		{"no end", []Waypoint{start}, ErrMissingEnd},
		{"no start", []Waypoint{end}, ErrMissingStart},
		{"two starts", []Waypoint{start, start, end}, ErrDuplicateStart},
		{"two ends", []Waypoint{start, end, end}, ErrDuplicateEnd},
		{"bad latitude", []Waypoint{start, wp(WaypointEnd, 91, 0, "e")}, ErrCoordinateOutOfRange},
		{"bad longitude", []Waypoint{wp(WaypointStart, 0, -181, "s"), end}, ErrCoordinateOutOfRange},
		{"unknown kind", []Waypoint{start, wp(WaypointKind("detour"), 3, 3, "d"), end}, ErrInvalidWaypointKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoute(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestRouteWithStartReplacesInsteadOfAccumulating(t *testing.T) {
	route, err := NewRoute([]Waypoint{
		wp(WaypointStart, 37.4275, -122.1697, "campus"),
		wp(WaypointEnd, 37.4419, -122.1430, "downtown"),
	})
	require.NoError(t, err)

	moved, err := route.WithStart(wp(WaypointPitStop, 37.50, -122.20, "dorms"))
	require.NoError(t, err)

	assert.Equal(t, "dorms", moved.Start().Label)
	assert.Equal(t, WaypointStart, moved.Start().Kind)
	assert.Len(t, moved.Points(), 2)
	assert.Equal(t, "campus", route.Start().Label, "original route must be unchanged")
}

func TestRoutePitStopsReturnsCopy(t *testing.T) {
	route, err := NewRoute([]Waypoint{
		wp(WaypointStart, 0, 0, "s"),
		wp(WaypointPitStop, 0.5, 0.5, "p"),
		wp(WaypointEnd, 1, 1, "e"),
	})
	require.NoError(t, err)

	stops := route.PitStops()
	stops[0].Label = "mutated"
	assert.Equal(t, "p", route.PitStops()[0].Label)
}

func TestCoordinatesValidateNaN(t *testing.T) {
	var rangeErr *CoordinateRangeError
	err := Coordinates{Lat: math.NaN(), Lon: 0}.Validate()
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "latitude", rangeErr.Field)
}

func TestPriceBreakdownRounded(t *testing.T) {
	p := PriceBreakdown{DistanceComponent: 1.425, TimeComponent: 0.9, BaseFee: 2, Total: 1.425 + 0.9 + 2}
	r := p.Rounded()
	assert.Equal(t, 1.43, r.DistanceComponent)
	assert.Equal(t, 4.33, r.Total)
	assert.Equal(t, 2.0, r.BaseFee)
}
