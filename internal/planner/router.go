package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/accessway-travel/service-planner/internal/domain"
	"github.com/accessway-travel/service-planner/internal/domain/plan"
	"github.com/accessway-travel/service-planner/internal/provider"
	"go.uber.org/zap"
)

// LegRouter produces one leg between two places for a requested mode,
// delegating to routing providers and synthesizing flight legs from
// great-circle geometry.
type LegRouter struct {
	directions provider.Directions
	rail       provider.RailJourneys
	fares      plan.FareSchedule
	logger     *zap.Logger
}

// NewLegRouter creates a LegRouter.
func NewLegRouter(directions provider.Directions, rail provider.RailJourneys, fares plan.FareSchedule, logger *zap.Logger) *LegRouter {
	return &LegRouter{directions: directions, rail: rail, fares: fares, logger: logger}
}

// RouteRoad builds a car or bus leg from a directions-provider route. A
// provider failure propagates so the caller can drop the candidate chain;
// geometry is never fabricated.
func (r *LegRouter) RouteRoad(ctx context.Context, from, to plan.Place, mode plan.Mode) (plan.Leg, error) {
	if !mode.IsSurface() {
		return plan.Leg{}, domain.NewValidationError(fmt.Sprintf("mode %s is not a road mode", mode))
	}

	profile := provider.ProfileDriving
	if mode == plan.ModeBus {
		profile = provider.ProfileBus
	}

	route, err := r.directions.GetRoute(ctx, from.Coordinates, to.Coordinates, profile)
	if err != nil {
		r.logger.Debug("road route unavailable",
			zap.String("mode", string(mode)),
			zap.String("from", from.Name),
			zap.String("to", to.Name),
			zap.Error(err),
		)
		return plan.Leg{}, err
	}

	price, err := r.fares.Price(mode, route.DistanceMeters)
	if err != nil {
		return plan.Leg{}, err
	}

	geometry := anchorGeometry(route.Geometry, from.Coordinates, to.Coordinates)
	return plan.NewLeg(mode, from, to, geometry, route.DistanceMeters, route.DurationSeconds/60, price)
}

// RouteTrain builds train legs from the rail provider's journeys between two
// stations. Alternatives keep the provider's ranking and carry its carrier
// identifiers. Leg distance is the great-circle distance between stations.
func (r *LegRouter) RouteTrain(ctx context.Context, from, to plan.Place, departAfter time.Time) ([]plan.Leg, error) {
	if from.Kind != plan.KindStation || to.Kind != plan.KindStation {
		return nil, domain.NewValidationError("train legs require station endpoints")
	}

	journeys, err := r.rail.GetJourneys(ctx, from.ID, to.ID, departAfter)
	if err != nil {
		r.logger.Debug("rail journeys unavailable",
			zap.String("from", from.Name),
			zap.String("to", to.Name),
			zap.Error(err),
		)
		return nil, err
	}

	distance := plan.HaversineMeters(from.Coordinates, to.Coordinates)
	price, err := r.fares.Price(plan.ModeTrain, distance)
	if err != nil {
		return nil, err
	}

	legs := make([]plan.Leg, 0, len(journeys))
	for _, j := range journeys {
		duration := j.Arrival.Sub(j.Departure).Minutes()
		leg, err := plan.NewLeg(plan.ModeTrain, from, to, nil, distance, duration, price)
		if err != nil {
			continue
		}
		legs = append(legs, leg.WithSchedule(j.Departure, j.Arrival).WithCarrier(j.CarrierID))
	}
	if len(legs) == 0 {
		return nil, provider.ErrNotFound
	}
	return legs, nil
}

// RoutePlane synthesizes a flight leg. No live flight inventory is queried:
// duration comes from great-circle distance at cruise speed, price from the
// plane fare formula.
func (r *LegRouter) RoutePlane(from, to plan.Place) (plan.Leg, error) {
	distance := plan.HaversineMeters(from.Coordinates, to.Coordinates)
	duration := distance / 1000 / plan.PlaneCruiseSpeedKmh * 60

	price, err := r.fares.Price(plan.ModePlane, distance)
	if err != nil {
		return plan.Leg{}, err
	}
	return plan.NewLeg(plan.ModePlane, from, to, nil, distance, duration, price)
}

// anchorGeometry pins a provider polyline to the requested endpoints. Road
// providers snap to the nearest road, which can land outside the coordinate
// epsilon of the requested place.
func anchorGeometry(geometry []plan.Coordinates, from, to plan.Coordinates) []plan.Coordinates {
	if len(geometry) == 0 {
		return []plan.Coordinates{from, to}
	}
	anchored := geometry
	if !geometry[0].Equal(from) {
		anchored = append([]plan.Coordinates{from}, anchored...)
	}
	if !anchored[len(anchored)-1].Equal(to) {
		anchored = append(anchored, to)
	}
	return anchored
}
