package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"campus-ride-service/internal/domain"
	"campus-ride-service/internal/platform/obs"
)

const defaultORSBaseURL = "https://api.openrouteservice.org"

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSGeocoder resolves addresses with the OpenRouteService search endpoint.
// It is safe for concurrent use.
type ORSGeocoder struct {
	session        *http.Client
	apiKey         string
	baseURL        string
	country        string
	maxAttempts    int
	initialBackoff time.Duration
}

type ORSOption func(*ORSGeocoder)

// WithBaseURL points the geocoder at another ORS deployment (or a test server).
func WithBaseURL(u string) ORSOption {
	return func(o *ORSGeocoder) { o.baseURL = strings.TrimRight(u, "/") }
}

func WithCountry(code string) ORSOption {
	return func(o *ORSGeocoder) { o.country = code }
}

func WithRetry(maxAttempts int, initialBackoff time.Duration) ORSOption {
	return func(o *ORSGeocoder) {
		if maxAttempts > 0 {
			o.maxAttempts = maxAttempts
		}
		o.initialBackoff = initialBackoff
	}
}

func NewORSGeocoder(apiKey string, opts ...ORSOption) (*ORSGeocoder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	o := &ORSGeocoder{
		session:        &http.Client{Timeout: 10 * time.Second},
		apiKey:         apiKey,
		baseURL:        defaultORSBaseURL,
		country:        "US",
		maxAttempts:    4,
		initialBackoff: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

// Geocode returns the best match for address. An empty feature list is a
// normal not-found result.
func (o *ORSGeocoder) Geocode(ctx context.Context, address string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := normalizeAddress(address)
	if norm == "" {
		return domain.Coordinates{}, false, nil
	}

	endpoint := o.baseURL + "/geocode/search"

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		if o.country != "" {
			q.Set("boundary.country", o.country)
		}
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("ors geocode %q: %w", norm, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, false, nil
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, false, fmt.Errorf("invalid coordinate format for %q", norm)
	}

	c := domain.Coordinates{Lon: coords[0], Lat: coords[1]}
	if err := c.Validate(); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("ors geocode %q: %w", norm, err)
	}

	return c, true, nil
}

// normalizeAddress collapses whitespace and lowercases, producing stable cache keys.
func normalizeAddress(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
