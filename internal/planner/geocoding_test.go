package planner

import (
	"context"
	"testing"

	"github.com/accessway-travel/service-planner/internal/domain/plan"
	"github.com/accessway-travel/service-planner/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSearchByText_DeduplicatesAcrossProviders(t *testing.T) {
	gareDeLyon := plan.Place{ID: "stop_area:SNCF:87686006", Name: "Paris Gare de Lyon", Kind: plan.KindStation, Coordinates: plan.Coordinates{Lon: 2.3730, Lat: 48.8443}}
	montparnasse := plan.Place{ID: "stop_area:SNCF:87391003", Name: "Paris Montparnasse", Kind: plan.KindStation, Coordinates: plan.Coordinates{Lon: 2.3208, Lat: 48.8414}}

	first := &fakePlaces{searchResults: []plan.Place{gareDeLyon}}
	second := &fakePlaces{searchResults: []plan.Place{gareDeLyon, montparnasse}}
	g := NewGeocoder([]provider.PlaceSearch{first, second}, NewHubDirectory(), zap.NewNop())

	results := g.SearchByText(context.Background(), "gare paris", nil)
	require.Len(t, results, 2)
	assert.Equal(t, gareDeLyon, results[0])
	assert.Equal(t, montparnasse, results[1])
}

func TestSearchByText_FailingProviderContributesNothing(t *testing.T) {
	station := plan.Place{ID: "s1", Name: "Gare de Nantes", Kind: plan.KindStation, Coordinates: plan.Coordinates{Lon: -1.5420, Lat: 47.2175}}

	broken := &fakePlaces{fail: true}
	healthy := &fakePlaces{searchResults: []plan.Place{station}}
	g := NewGeocoder([]provider.PlaceSearch{broken, healthy}, NewHubDirectory(), zap.NewNop())

	results := g.SearchByText(context.Background(), "gare de nantes", nil)
	require.Len(t, results, 1)
	assert.Equal(t, station, results[0])
}

func TestFindNearest_FallsThroughProviders(t *testing.T) {
	airport := plan.Place{ID: "airport:NTE", Name: "Nantes Atlantique", Kind: plan.KindAirport, Coordinates: plan.Coordinates{Lon: -1.6078, Lat: 47.1532}}

	empty := &fakePlaces{}
	stocked := &fakePlaces{airports: []plan.Place{airport}}
	g := NewGeocoder([]provider.PlaceSearch{empty, stocked}, NewHubDirectory(), zap.NewNop())

	got, err := g.FindNearest(context.Background(), plan.Coordinates{Lon: -1.5534, Lat: 47.2184}, plan.KindAirport, HubSearchRadiusMeters)
	require.NoError(t, err)
	assert.Equal(t, airport, got)
}

func TestFindNearest_NothingInRadius(t *testing.T) {
	// Lille's airport is far outside a 50 km radius around Nice.
	lille := plan.Place{ID: "airport:LIL", Name: "Lille Lesquin", Kind: plan.KindAirport, Coordinates: plan.Coordinates{Lon: 3.0897, Lat: 50.5633}}
	stocked := &fakePlaces{airports: []plan.Place{lille}}
	g := NewGeocoder([]provider.PlaceSearch{stocked}, NewHubDirectory(), zap.NewNop())

	_, err := g.FindNearest(context.Background(), plan.Coordinates{Lon: 7.2620, Lat: 43.7102}, plan.KindAirport, HubSearchRadiusMeters)
	assert.ErrorIs(t, err, provider.ErrNotFound)
}

func TestResolveTransferHub(t *testing.T) {
	g := NewGeocoder(nil, NewHubDirectory(), zap.NewNop())

	station, fellBack := g.ResolveTransferHub("lyon", plan.KindStation)
	assert.False(t, fellBack)
	assert.Equal(t, "Lyon Part-Dieu", station.Name)
	assert.Equal(t, plan.KindStation, station.Kind)

	airport, fellBack := g.ResolveTransferHub("Lyon", plan.KindAirport)
	assert.False(t, fellBack)
	assert.Equal(t, "Lyon Saint-Exupéry", airport.Name)

	fallback, fellBack := g.ResolveTransferHub("Gotham", plan.KindStation)
	assert.True(t, fellBack)
	assert.Equal(t, "Paris Gare de Lyon", fallback.Name)
}

func TestHubDirectoryLookup(t *testing.T) {
	d := NewHubDirectory()

	entry, ok := d.Lookup("MARSEILLE")
	require.True(t, ok)
	assert.Equal(t, "Marseille", entry.Name)

	_, ok = d.Lookup("Genève")
	assert.False(t, ok)

	assert.Equal(t, DefaultCityName, d.Default().Name)
	assert.Len(t, d.Cities(), 9)
}
