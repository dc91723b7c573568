package geocode

import (
	"context"
	"sync"

	"campus-ride-service/internal/domain"
)

type MockEntry struct {
	Address string
	Coords  domain.Coordinates
	Err     error
}

// MockGeocoder answers from a fixed table and counts calls per address.
// Addresses missing from the table are NotFound.
type MockGeocoder struct {
	mu    sync.Mutex
	m     map[string]MockEntry
	calls map[string]int
}

func NewMockGeocoder(entries []MockEntry) *MockGeocoder {
	m := make(map[string]MockEntry, len(entries))
	for _, e := range entries {
		m[e.Address] = e
	}
	return &MockGeocoder{m: m, calls: make(map[string]int)}
}

func (g *MockGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls[address]++

	e, ok := g.m[address]
	if !ok {
		return domain.Coordinates{}, false, nil
	}
	if e.Err != nil {
		return domain.Coordinates{}, false, e.Err
	}
	return e.Coords, true, nil
}

func (g *MockGeocoder) Calls(address string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[address]
}
