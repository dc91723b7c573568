package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"campus-ride-service/internal/domain"
	"campus-ride-service/internal/platform/obs"
	"campus-ride-service/internal/ports"

	"github.com/mmcloughlin/geohash"
)

const (
	// Precision-5 cells span about 3 miles north-south; east-west they shrink
	// with cos(latitude).
	pitStopCellPrecision = 5

	sampleSpacingMiles = 0.5

	DefaultPitStopRadiusMiles = 0.5
)

var ErrInvalidRadius = errors.New("search radius must be positive")

// PitStopFinder lists discount-partner businesses close to a route.
type PitStopFinder struct {
	repo          ports.PitStopRepository
	defaultRadius float64
}

func NewPitStopFinder(repo ports.PitStopRepository, defaultRadiusMiles float64) *PitStopFinder {
	if defaultRadiusMiles <= 0 {
		defaultRadiusMiles = DefaultPitStopRadiusMiles
	}
	return &PitStopFinder{repo: repo, defaultRadius: defaultRadiusMiles}
}

// AlongRoute returns every pit stop within radiusMiles of the route's path,
// nearest first (ties by name). A zero radius uses the finder's default.
func (f *PitStopFinder) AlongRoute(ctx context.Context, route domain.Route, radiusMiles float64) (_ []domain.PitStopMatch, err error) {
	defer obs.Time(ctx, "pitstops.AlongRoute")(&err)

	if radiusMiles == 0 {
		radiusMiles = f.defaultRadius
	}
	if !(radiusMiles > 0) {
		return nil, fmt.Errorf("along route: %w", ErrInvalidRadius)
	}

	stops, err := f.repo.ListPitStops(ctx)
	if err != nil {
		return nil, fmt.Errorf("along route: %w", err)
	}

	points := route.Points()
	samples := sampleLegs(points, sampleSpacingMiles)

	var candidates []domain.PitStop
	if radiusMiles > maxIndexedRadius(samples) {
		candidates = stops
	} else {
		candidates = candidatesNear(indexByCell(stops), samples)
	}

	matches := make([]domain.PitStopMatch, 0, len(candidates))
	for _, s := range candidates {
		d := distanceToPath(s.Coords, points)
		if d <= radiusMiles {
			matches = append(matches, domain.PitStopMatch{PitStop: s, DistanceMiles: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].DistanceMiles != matches[j].DistanceMiles {
			return matches[i].DistanceMiles < matches[j].DistanceMiles
		}
		return matches[i].PitStop.Name < matches[j].PitStop.Name
	})

	return matches, nil
}

// maxIndexedRadius is the largest radius a sample's cell plus its eight
// neighbours still covers. Cells are narrowest in the neighbour row furthest
// from the equator, and each path point may sit half a sample spacing from a
// sample.
func maxIndexedRadius(samples []domain.Coordinates) float64 {
	if len(samples) == 0 {
		return 0
	}

	box := geohash.BoundingBox(geohash.EncodeWithPrecision(0, 0, pitStopCellPrecision))
	latSpan, lonSpan := box.MaxLat-box.MinLat, box.MaxLng-box.MinLng

	maxAbsLat := 0.0
	for _, c := range samples {
		maxAbsLat = math.Max(maxAbsLat, math.Abs(c.Lat))
	}
	maxAbsLat = math.Min(90, maxAbsLat+latSpan)

	heightMiles := degreesToRadians(latSpan) * earthRadiusMiles
	widthMiles := degreesToRadians(lonSpan) * earthRadiusMiles * math.Cos(degreesToRadians(maxAbsLat))

	return math.Min(heightMiles, widthMiles) - sampleSpacingMiles/2
}

func indexByCell(stops []domain.PitStop) map[string][]domain.PitStop {
	idx := make(map[string][]domain.PitStop)
	for _, s := range stops {
		cell := stopCell(s)
		idx[cell] = append(idx[cell], s)
	}
	return idx
}

// stopCell prefers the geohash stored with the stop and encodes the
// coordinates only when none is stored.
func stopCell(s domain.PitStop) string {
	if len(s.Geohash) >= pitStopCellPrecision {
		return s.Geohash[:pitStopCellPrecision]
	}
	return geohash.EncodeWithPrecision(s.Coords.Lat, s.Coords.Lon, pitStopCellPrecision)
}

// candidatesNear collects stops from every sample's cell and its eight neighbours.
func candidatesNear(idx map[string][]domain.PitStop, samples []domain.Coordinates) []domain.PitStop {
	seenCells := make(map[string]struct{})
	var out []domain.PitStop

	visit := func(cell string) {
		if _, ok := seenCells[cell]; ok {
			return
		}
		seenCells[cell] = struct{}{}
		out = append(out, idx[cell]...)
	}

	for _, c := range samples {
		cell := geohash.EncodeWithPrecision(c.Lat, c.Lon, pitStopCellPrecision)
		visit(cell)
		for _, n := range geohash.Neighbors(cell) {
			visit(n)
		}
	}
	return out
}

// sampleLegs returns points along each leg spaced at most spacing miles apart,
// including every waypoint.
func sampleLegs(points []domain.Waypoint, spacing float64) []domain.Coordinates {
	if len(points) == 0 {
		return nil
	}

	out := []domain.Coordinates{points[0].Coords}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1].Coords, points[i].Coords
		steps := int(math.Ceil(haversineMiles(a, b) / spacing))
		for k := 1; k <= steps; k++ {
			t := float64(k) / float64(steps)
			out = append(out, domain.Coordinates{
				Lat: a.Lat + (b.Lat-a.Lat)*t,
				Lon: a.Lon + (b.Lon-a.Lon)*t,
			})
		}
		if steps == 0 {
			out = append(out, b)
		}
	}
	return out
}

// distanceToPath is the straight-line distance in miles from p to the closest
// point on the polyline through points.
func distanceToPath(p domain.Coordinates, points []domain.Waypoint) float64 {
	switch len(points) {
	case 0:
		return math.Inf(1)
	case 1:
		return haversineMiles(p, points[0].Coords)
	}

	best := math.Inf(1)
	for i := 1; i < len(points); i++ {
		if d := distanceToSegment(p, points[i-1].Coords, points[i].Coords); d < best {
			best = d
		}
	}
	return best
}

// distanceToSegment projects onto the segment in a local equirectangular
// plane, then measures the great-circle distance to the projected point.
func distanceToSegment(p, a, b domain.Coordinates) float64 {
	k := math.Cos(degreesToRadians((a.Lat + b.Lat) / 2))

	ax, ay := a.Lon*k, a.Lat
	bx, by := b.Lon*k, b.Lat
	px, py := p.Lon*k, p.Lat

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy

	t := 0.0
	if lenSq > 0 {
		t = ((px-ax)*dx + (py-ay)*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}

	closest := domain.Coordinates{
		Lat: a.Lat + (b.Lat-a.Lat)*t,
		Lon: a.Lon + (b.Lon-a.Lon)*t,
	}
	return haversineMiles(p, closest)
}
