package planner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/accessway-travel/service-planner/internal/domain"
	"github.com/accessway-travel/service-planner/internal/domain/plan"
	"github.com/accessway-travel/service-planner/internal/provider"
)

// fakeDirections returns synthetic road routes: distance is 1.2 times the
// great-circle distance, speed a flat 72 km/h.
type fakeDirections struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (f *fakeDirections) GetRoute(_ context.Context, from, to plan.Coordinates, _ provider.RouteProfile) (provider.Route, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.fail {
		return provider.Route{}, domain.NewUnavailableError("directions", errors.New("connection refused"))
	}
	d := plan.HaversineMeters(from, to) * 1.2
	return provider.Route{
		Geometry:        []plan.Coordinates{from, to},
		DistanceMeters:  d,
		DurationSeconds: d / 20, // 72 km/h
	}, nil
}

func (f *fakeDirections) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeRail returns one journey leaving 30 minutes after the requested
// departure and taking three hours.
type fakeRail struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (f *fakeRail) GetJourneys(_ context.Context, _, _ string, departAfter time.Time) ([]provider.Journey, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.fail {
		return nil, provider.ErrNotFound
	}
	dep := departAfter.Add(30 * time.Minute)
	return []provider.Journey{
		{Departure: dep, Arrival: dep.Add(3 * time.Hour), CarrierID: "TGV6173"},
	}, nil
}

func (f *fakeRail) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakePlaces serves proximity lookups from fixed station/airport lists and
// text search from a canned result set.
type fakePlaces struct {
	mu            sync.Mutex
	calls         int
	fail          bool
	stations      []plan.Place
	airports      []plan.Place
	searchResults []plan.Place
}

func (f *fakePlaces) SearchByText(_ context.Context, _ string, _ []plan.PlaceKind) ([]plan.Place, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.fail {
		return nil, domain.NewUnavailableError("places", errors.New("connection refused"))
	}
	return f.searchResults, nil
}

func (f *fakePlaces) FindNearest(_ context.Context, coord plan.Coordinates, kind plan.PlaceKind, radiusMeters float64) (plan.Place, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.fail {
		return plan.Place{}, domain.NewUnavailableError("places", errors.New("connection refused"))
	}

	var pool []plan.Place
	switch kind {
	case plan.KindStation:
		pool = f.stations
	case plan.KindAirport:
		pool = f.airports
	}

	best := plan.Place{}
	bestDist := radiusMeters
	found := false
	for _, p := range pool {
		if d := plan.HaversineMeters(coord, p.Coordinates); d <= bestDist {
			best, bestDist, found = p, d, true
		}
	}
	if !found {
		return plan.Place{}, provider.ErrNotFound
	}
	return best, nil
}

func (f *fakePlaces) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
