package geocode

import (
	"context"
	"fmt"
	"strings"

	"campus-ride-service/internal/domain"
	"campus-ride-service/internal/platform/obs"

	"googlemaps.github.io/maps"
)

// GoogleGeocoder resolves addresses with the Google Maps Geocoding API.
type GoogleGeocoder struct {
	client *maps.Client
	region string
}

// NewGoogleGeocoder creates a geocoder for the given API key. Extra client
// options (such as maps.WithBaseURL) are passed through to the maps client.
func NewGoogleGeocoder(apiKey string, opts ...maps.ClientOption) (*GoogleGeocoder, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleGeocoder{client: client, region: "us"}, nil
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "google.Geocode")(&err)

	norm := normalizeAddress(address)
	if norm == "" {
		return domain.Coordinates{}, false, nil
	}

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: norm,
		Region:  g.region,
	})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return domain.Coordinates{}, false, nil
		}
		return domain.Coordinates{}, false, fmt.Errorf("google geocode %q: %w", norm, err)
	}
	if len(results) == 0 {
		return domain.Coordinates{}, false, nil
	}

	loc := results[0].Geometry.Location
	c := domain.Coordinates{Lon: loc.Lng, Lat: loc.Lat}
	if err := c.Validate(); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("google geocode %q: %w", norm, err)
	}
	return c, true, nil
}
