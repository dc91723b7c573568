package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingStart   = errors.New("route has no start waypoint")
	ErrMissingEnd     = errors.New("route has no end waypoint")
	ErrDuplicateStart = errors.New("route has more than one start waypoint")
	ErrDuplicateEnd   = errors.New("route has more than one end waypoint")
)

// Route is the ordered set of waypoints a ride visits: one start, pit stops in
// visit order, one end. Reference waypoints are carried for display only and
// never contribute to distance.
//
// A Route is built once by NewRoute and is never re-sorted afterwards.
type Route struct {
	start      Waypoint
	pitStops   []Waypoint
	end        Waypoint
	references []Waypoint
}

// NewRoute validates and orders the given waypoints.
func NewRoute(waypoints []Waypoint) (Route, error) {
	var (
		r                Route
		hasStart, hasEnd bool
	)

	for i, w := range waypoints {
		if err := w.Coords.Validate(); err != nil {
			return Route{}, fmt.Errorf("new route: waypoint #%d %q: %w", i+1, w.Label, err)
		}

		switch w.Kind {
		case WaypointStart:
			if hasStart {
				return Route{}, fmt.Errorf("new route: %w", ErrDuplicateStart)
			}
			r.start = w
			hasStart = true
		case WaypointEnd:
			if hasEnd {
				return Route{}, fmt.Errorf("new route: %w", ErrDuplicateEnd)
			}
			r.end = w
			hasEnd = true
		case WaypointPitStop:
			r.pitStops = append(r.pitStops, w)
		case WaypointReference:
			r.references = append(r.references, w)
		default:
			return Route{}, fmt.Errorf("new route: waypoint #%d %q: %w", i+1, w.Kind, ErrInvalidWaypointKind)
		}
	}

	if !hasStart {
		return Route{}, fmt.Errorf("new route: %w", ErrMissingStart)
	}
	if !hasEnd {
		return Route{}, fmt.Errorf("new route: %w", ErrMissingEnd)
	}

	return r, nil
}

func (r Route) Start() Waypoint { return r.start }

func (r Route) End() Waypoint { return r.end }

// PitStops returns a copy of the intermediate stops in visit order.
func (r Route) PitStops() []Waypoint { return append([]Waypoint(nil), r.pitStops...) }

func (r Route) References() []Waypoint { return append([]Waypoint(nil), r.references...) }

// Points returns start, pit stops and end in travel order.
func (r Route) Points() []Waypoint {
	out := make([]Waypoint, 0, len(r.pitStops)+2)
	out = append(out, r.start)
	out = append(out, r.pitStops...)
	out = append(out, r.end)
	return out
}

// WithStart returns a copy of the route with its start replaced.
func (r Route) WithStart(w Waypoint) (Route, error) {
	w.Kind = WaypointStart
	return r.rebuild(w, r.end, r.pitStops)
}

// WithEnd returns a copy of the route with its end replaced.
func (r Route) WithEnd(w Waypoint) (Route, error) {
	w.Kind = WaypointEnd
	return r.rebuild(r.start, w, r.pitStops)
}

// WithPitStops returns a copy of the route visiting the given stops instead.
func (r Route) WithPitStops(stops []Waypoint) (Route, error) {
	normalized := make([]Waypoint, len(stops))
	for i, s := range stops {
		s.Kind = WaypointPitStop
		normalized[i] = s
	}
	return r.rebuild(r.start, r.end, normalized)
}

func (r Route) rebuild(start, end Waypoint, stops []Waypoint) (Route, error) {
	all := make([]Waypoint, 0, len(stops)+len(r.references)+2)
	all = append(all, start)
	all = append(all, stops...)
	all = append(all, end)
	all = append(all, r.references...)
	return NewRoute(all)
}

// Travel distance and duration derived from a route. Never persisted.
type RouteEstimate struct {
	DistanceMiles   float64
	DurationMinutes float64
}
