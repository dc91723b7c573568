package domain

// A discount-partner business that riders can visit along a route.
type PitStop struct {
	ID       int64
	Name     string
	Category string
	Discount string
	Coords   Coordinates
	// Geohash of Coords as stored by the repository; may be empty.
	Geohash string
}

// PitStopMatch is a pit stop found near a route together with its distance from it.
type PitStopMatch struct {
	PitStop       PitStop
	DistanceMiles float64
}
