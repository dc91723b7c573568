package services

import (
	"errors"
	"fmt"
	"math"

	"campus-ride-service/internal/domain"
)

// FareConfig holds the linear cost model for a seat.
type FareConfig struct {
	BaseFee       float64
	CostPerMile   float64
	CostPerMinute float64
	MinimumFare   float64
	// Ceiling on the distance charge per mile, independent of CostPerMile.
	MaxFarePerMile float64
}

func DefaultFareConfig() FareConfig {
	return FareConfig{
		BaseFee:        2.00,
		CostPerMile:    0.75,
		CostPerMinute:  0.10,
		MinimumFare:    3.00,
		MaxFarePerMile: 1.50,
	}
}

func (c FareConfig) Validate() error {
	switch {
	case c.BaseFee < 0:
		return errors.New("fare config: base fee must be non-negative")
	case c.CostPerMile < 0:
		return errors.New("fare config: cost per mile must be non-negative")
	case c.CostPerMinute < 0:
		return errors.New("fare config: cost per minute must be non-negative")
	case c.MinimumFare < 0:
		return errors.New("fare config: minimum fare must be non-negative")
	case c.MaxFarePerMile < 0:
		return errors.New("fare config: max fare per mile must be non-negative")
	}
	return nil
}

// PriceCalculator turns distance and duration into a per-seat fare.
// It holds no mutable state and is safe for concurrent use.
type PriceCalculator struct {
	fares FareConfig
}

func NewPriceCalculator(fares FareConfig) (*PriceCalculator, error) {
	if err := fares.Validate(); err != nil {
		return nil, fmt.Errorf("new price calculator: %w", err)
	}
	return &PriceCalculator{fares: fares}, nil
}

// CalculatePrice applies the cost model. The returned Total is unrounded;
// callers round only for display.
func (p *PriceCalculator) CalculatePrice(distanceMiles, durationMinutes float64) domain.PriceBreakdown {
	f := p.fares

	distanceComponent := math.Min(distanceMiles*f.CostPerMile, distanceMiles*f.MaxFarePerMile)
	timeComponent := durationMinutes * f.CostPerMinute
	total := math.Max(distanceComponent+timeComponent+f.BaseFee, f.MinimumFare)

	return domain.PriceBreakdown{
		DistanceComponent: distanceComponent,
		TimeComponent:     timeComponent,
		BaseFee:           f.BaseFee,
		Total:             total,
	}
}
