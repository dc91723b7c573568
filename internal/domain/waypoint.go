package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidWaypointKind = errors.New("unknown waypoint kind")

type WaypointKind string

const (
	WaypointStart     WaypointKind = "start"
	WaypointEnd       WaypointKind = "end"
	WaypointPitStop   WaypointKind = "pit_stop"
	WaypointReference WaypointKind = "reference"
)

func (k WaypointKind) IsValid() bool {
	switch k {
	case WaypointStart, WaypointEnd, WaypointPitStop, WaypointReference:
		return true
	}
	return false
}

// A labeled geographic point taking part in a route.
// Waypoints are values: replacing a start or end creates a new Waypoint.
type Waypoint struct {
	Kind   WaypointKind
	Coords Coordinates
	Label  string
}

func NewWaypoint(kind WaypointKind, lat, lon float64, label string) (Waypoint, error) {
	if !kind.IsValid() {
		return Waypoint{}, fmt.Errorf("new waypoint %q: %w", kind, ErrInvalidWaypointKind)
	}
	c := Coordinates{Lon: lon, Lat: lat}
	if err := c.Validate(); err != nil {
		return Waypoint{}, fmt.Errorf("new waypoint %q: %w", label, err)
	}
	return Waypoint{Kind: kind, Coords: c, Label: label}, nil
}
