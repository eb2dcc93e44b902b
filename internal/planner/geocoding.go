package planner

import (
	"context"
	"errors"

	"github.com/accessway-travel/service-planner/internal/domain/plan"
	"github.com/accessway-travel/service-planner/internal/provider"
	"go.uber.org/zap"
)

// HubSearchRadiusMeters bounds nearest-hub proximity lookups.
const HubSearchRadiusMeters = 50_000.0

// Geocoder normalizes heterogeneous place providers into canonical places and
// resolves transfer hubs. Provider failures are soft: text search degrades to
// an empty result, proximity lookups to a not-found candidate.
type Geocoder struct {
	providers []provider.PlaceSearch
	hubs      *HubDirectory
	logger    *zap.Logger
}

// NewGeocoder creates a Geocoder over the given place-search providers.
func NewGeocoder(providers []provider.PlaceSearch, hubs *HubDirectory, logger *zap.Logger) *Geocoder {
	return &Geocoder{providers: providers, hubs: hubs, logger: logger}
}

// Directory exposes the curated hub directory for heuristics that iterate
// over the candidate cities.
func (g *Geocoder) Directory() *HubDirectory {
	return g.hubs
}

// SearchByText resolves a free-text query across all providers, deduplicated
// by place ID. Provider errors never propagate; a failing provider simply
// contributes nothing.
func (g *Geocoder) SearchByText(ctx context.Context, query string, kinds []plan.PlaceKind) []plan.Place {
	seen := make(map[string]struct{})
	var results []plan.Place

	for _, p := range g.providers {
		places, err := p.SearchByText(ctx, query, kinds)
		if err != nil {
			g.logger.Warn("place search provider failed",
				zap.String("query", query),
				zap.Error(err),
			)
			continue
		}
		for _, place := range places {
			if _, dup := seen[place.ID]; dup {
				continue
			}
			seen[place.ID] = struct{}{}
			results = append(results, place)
		}
	}
	return results
}

// FindNearest returns the closest place of the given kind within radiusMeters.
// The first provider that yields a result wins; provider.ErrNotFound is
// returned when no candidate lies within the radius.
func (g *Geocoder) FindNearest(ctx context.Context, coord plan.Coordinates, kind plan.PlaceKind, radiusMeters float64) (plan.Place, error) {
	for _, p := range g.providers {
		place, err := p.FindNearest(ctx, coord, kind, radiusMeters)
		if err != nil {
			if !errors.Is(err, provider.ErrNotFound) {
				g.logger.Warn("nearest-place provider failed",
					zap.String("kind", string(kind)),
					zap.Error(err),
				)
			}
			continue
		}
		return place, nil
	}
	return plan.Place{}, provider.ErrNotFound
}

// ResolveTransferHub looks up the principal station or airport for a named
// city. Unknown cities fall back to the default city's hub; fellBack reports
// when that happened so callers can surface a warning instead of silently
// returning the wrong hub.
func (g *Geocoder) ResolveTransferHub(city string, kind plan.PlaceKind) (place plan.Place, fellBack bool) {
	entry, ok := g.hubs.Lookup(city)
	if !ok {
		entry = g.hubs.Default()
		fellBack = true
		g.logger.Warn("transfer hub lookup missed, using default city",
			zap.String("city", city),
			zap.String("fallback", entry.Name),
		)
	}
	if kind == plan.KindAirport {
		return entry.Airport, fellBack
	}
	return entry.Station, fellBack
}
