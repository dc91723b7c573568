package domain

import (
	"errors"
	"fmt"
)

var ErrCoordinateOutOfRange = errors.New("coordinate out of range")

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// CoordinateRangeError reports which component of a coordinate is invalid.
type CoordinateRangeError struct {
	Field string
	Value float64
}

func (e *CoordinateRangeError) Error() string {
	return fmt.Sprintf("%s %v is outside the valid range", e.Field, e.Value)
}

func (e *CoordinateRangeError) Unwrap() error { return ErrCoordinateOutOfRange }

// Validate rejects latitudes outside [-90, 90] and longitudes outside [-180, 180].
// NaN fails both checks.
func (c Coordinates) Validate() error {
	if !(c.Lat >= -90 && c.Lat <= 90) {
		return &CoordinateRangeError{Field: "latitude", Value: c.Lat}
	}
	if !(c.Lon >= -180 && c.Lon <= 180) {
		return &CoordinateRangeError{Field: "longitude", Value: c.Lon}
	}
	return nil
}
