// Package provider defines the external service interfaces the planner
// depends on, and HTTP client implementations for each. Clients are plain
// dependency-injected handles; there are no package-level singletons.
package provider

import (
	"context"
	"errors"
	"time"

	"github.com/accessway-travel/service-planner/internal/domain/plan"
)

// ErrNotFound signals that a provider returned no usable result for the
// request. Callers treat the dependent candidate as non-viable.
var ErrNotFound = errors.New("provider: no result")

// RouteProfile selects the road-routing profile for a directions request.
type RouteProfile string

const (
	ProfileDriving RouteProfile = "driving"
	ProfileBus     RouteProfile = "driving-traffic"
)

// Route is a normalized road route returned by a directions provider.
type Route struct {
	Geometry        []plan.Coordinates
	DistanceMeters  float64
	DurationSeconds float64
}

// Directions computes road geometry, distance, and duration between two
// coordinates.
type Directions interface {
	GetRoute(ctx context.Context, from, to plan.Coordinates, profile RouteProfile) (Route, error)
}

// Journey is one provider-ranked rail alternative between two stations.
type Journey struct {
	Departure time.Time
	Arrival   time.Time
	CarrierID string
}

// RailJourneys finds scheduled rail journeys between two stations.
type RailJourneys interface {
	GetJourneys(ctx context.Context, fromStationID, toStationID string, departAfter time.Time) ([]Journey, error)
}

// PlaceSearch resolves free-text queries and proximity lookups into places.
type PlaceSearch interface {
	SearchByText(ctx context.Context, query string, kinds []plan.PlaceKind) ([]plan.Place, error)
	FindNearest(ctx context.Context, coord plan.Coordinates, kind plan.PlaceKind, radiusMeters float64) (plan.Place, error)
}
