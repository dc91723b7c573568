package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"campus-ride-service/internal/domain"
	"campus-ride-service/internal/platform/obs"
	"campus-ride-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

const maxConcurrentGeocodes = 4

var ErrEmptyAddress = errors.New("address must be non-empty")

// UnresolvedAddressError lists every address the geocoder did not recognise.
type UnresolvedAddressError struct {
	Addresses []string
}

func (e *UnresolvedAddressError) Error() string {
	return fmt.Sprintf("unresolved addresses: %s", strings.Join(e.Addresses, "; "))
}

// Quoter runs the waypoints -> distance -> duration -> price pipeline.
type Quoter struct {
	pricing  *PriceCalculator
	geocoder ports.Geocoder
}

func NewQuoter(pricing *PriceCalculator, geocoder ports.Geocoder) *Quoter {
	return &Quoter{pricing: pricing, geocoder: geocoder}
}

// QuoteRoute recomputes the full estimate for a route. It is pure: identical
// routes always produce identical quotes.
func (q *Quoter) QuoteRoute(route domain.Route) domain.Quote {
	distance := EstimateRouteDistance(route)
	duration := EstimateDurationMinutes(distance)

	return domain.Quote{
		Route: route,
		Estimate: domain.RouteEstimate{
			DistanceMiles:   distance,
			DurationMinutes: duration,
		},
		Price: q.pricing.CalculatePrice(distance, duration),
	}
}

type QuoteAddressRequest struct {
	Start    string
	End      string
	PitStops []string
}

// QuoteAddresses geocodes free-text places and quotes the resulting route.
func (q *Quoter) QuoteAddresses(ctx context.Context, req QuoteAddressRequest) (_ domain.Quote, err error) {
	defer obs.Time(ctx, "quote.QuoteAddresses")(&err)

	route, err := q.ResolveRoute(ctx, req)
	if err != nil {
		return domain.Quote{}, err
	}
	return q.QuoteRoute(route), nil
}

// ResolveRoute geocodes every address in the request and builds a Route.
// Lookups run concurrently; results keep the request order.
func (q *Quoter) ResolveRoute(ctx context.Context, req QuoteAddressRequest) (domain.Route, error) {
	if q.geocoder == nil {
		return domain.Route{}, errors.New("resolve route: no geocoder configured")
	}

	type lookup struct {
		kind    domain.WaypointKind
		address string
	}

	lookups := make([]lookup, 0, len(req.PitStops)+2)
	lookups = append(lookups, lookup{domain.WaypointStart, strings.TrimSpace(req.Start)})
	for _, p := range req.PitStops {
		lookups = append(lookups, lookup{domain.WaypointPitStop, strings.TrimSpace(p)})
	}
	lookups = append(lookups, lookup{domain.WaypointEnd, strings.TrimSpace(req.End)})

	for _, l := range lookups {
		if l.address == "" {
			return domain.Route{}, fmt.Errorf("resolve route: %s: %w", l.kind, ErrEmptyAddress)
		}
	}

	waypoints := make([]domain.Waypoint, len(lookups))
	found := make([]bool, len(lookups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentGeocodes)
	for i, l := range lookups {
		g.Go(func() error {
			coords, ok, err := q.geocoder.Geocode(gctx, l.address)
			if err != nil {
				return fmt.Errorf("geocode %q: %w", l.address, err)
			}
			found[i] = ok
			waypoints[i] = domain.Waypoint{Kind: l.kind, Coords: coords, Label: l.address}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Route{}, fmt.Errorf("resolve route: %w", err)
	}

	var missing []string
	for i, ok := range found {
		if !ok {
			missing = append(missing, lookups[i].address)
		}
	}
	if len(missing) > 0 {
		return domain.Route{}, &UnresolvedAddressError{Addresses: missing}
	}

	route, err := domain.NewRoute(waypoints)
	if err != nil {
		return domain.Route{}, fmt.Errorf("resolve route: %w", err)
	}
	return route, nil
}
