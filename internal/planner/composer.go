package planner

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/accessway-travel/service-planner/internal/domain"
	"github.com/accessway-travel/service-planner/internal/domain/plan"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentChains bounds how many candidate chains are evaluated at once.
const maxConcurrentChains = 4

// PlanRequest describes one journey search.
type PlanRequest struct {
	Origin      plan.Place
	Destination plan.Place
	Modes       []plan.Mode
	DepartAfter time.Time
}

// PlanResult carries the ranked itineraries and any non-fatal warnings raised
// while composing them (for example a transfer-hub lookup that fell back to
// the default city).
type PlanResult struct {
	Itineraries []plan.Itinerary
	Warnings    []string
}

// Composer assembles and ranks candidate itineraries between an origin and a
// destination. A leg failure discards only the candidate that depended on it;
// the worst outcome of a search is an empty result, never an error.
type Composer struct {
	geocoder *Geocoder
	router   *LegRouter
	now      func() time.Time
	logger   *zap.Logger
}

// NewComposer creates a Composer.
func NewComposer(geocoder *Geocoder, router *LegRouter, logger *zap.Logger) *Composer {
	return &Composer{
		geocoder: geocoder,
		router:   router,
		now:      time.Now,
		logger:   logger,
	}
}

// endpointHubs holds the transfer points resolved for one endpoint. A nil
// entry means no hub of that kind could be found.
type endpointHubs struct {
	station *plan.Place
	airport *plan.Place
}

// Plan runs the full composition: direct candidates, chained candidates over
// transfer hubs, and the combined five-leg heuristic, ranked by score.
func (c *Composer) Plan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	if err := validateRequest(req); err != nil {
		return PlanResult{}, err
	}
	// No allowed modes is an empty search, not an error; no provider is
	// contacted.
	if len(req.Modes) == 0 {
		return PlanResult{Itineraries: []plan.Itinerary{}}, nil
	}

	departAfter := req.DepartAfter
	if departAfter.IsZero() {
		departAfter = addMinutes(c.now().UTC(), plan.InitialBufferMinutes)
	}

	allowed := make(map[plan.Mode]bool, len(req.Modes))
	for _, m := range req.Modes {
		allowed[m] = true
	}
	combined := allowed[plan.ModeCar] && allowed[plan.ModeTrain] && allowed[plan.ModePlane] &&
		!req.Origin.Kind.IsHub() && !req.Destination.Kind.IsHub()

	var warnings []string
	originHubs := c.resolveHubs(ctx, req.Origin, allowed[plan.ModeTrain] || combined, allowed[plan.ModePlane], &warnings)
	destHubs := c.resolveHubs(ctx, req.Destination, allowed[plan.ModeTrain] || combined, allowed[plan.ModePlane], &warnings)

	var candidates []plan.Itinerary
	candidates = append(candidates, c.directCandidates(ctx, req, departAfter, originHubs, destHubs)...)
	if len(req.Modes) > 1 {
		candidates = append(candidates, c.chainedCandidates(ctx, req, departAfter, originHubs, destHubs)...)
	}
	if combined {
		if it, ok := c.buildCombined(ctx, req.Origin, req.Destination, originHubs.airport, destHubs.station, departAfter); ok {
			candidates = append(candidates, it)
		}
	}

	// Stable sort keeps first-discovered order on equal scores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score() < candidates[j].Score()
	})
	if len(candidates) > plan.MaxItineraries {
		candidates = candidates[:plan.MaxItineraries]
	}
	if candidates == nil {
		candidates = []plan.Itinerary{}
	}

	return PlanResult{Itineraries: candidates, Warnings: warnings}, nil
}

func validateRequest(req PlanRequest) error {
	if req.Origin.Name == "" {
		return domain.NewValidationError("origin is required")
	}
	if req.Destination.Name == "" {
		return domain.NewValidationError("destination is required")
	}
	if err := req.Origin.Coordinates.Validate(); err != nil {
		return err
	}
	if err := req.Destination.Coordinates.Validate(); err != nil {
		return err
	}
	for _, m := range req.Modes {
		if !m.IsValid() {
			return domain.NewValidationError(fmt.Sprintf("invalid transport mode: %s", m))
		}
	}
	return nil
}

// resolveHubs finds the transfer points for one endpoint. Hub-kind places are
// their own hub; city-kind places resolve through the curated directory;
// anything else goes through a proximity search. A missing hub is recorded as
// nil and simply prunes the chains that would need it.
func (c *Composer) resolveHubs(ctx context.Context, place plan.Place, needStation, needAirport bool, warnings *[]string) endpointHubs {
	var hubs endpointHubs

	if needStation {
		switch {
		case place.Kind == plan.KindStation:
			p := place
			hubs.station = &p
		case place.Kind == plan.KindCity:
			hub, fellBack := c.geocoder.ResolveTransferHub(place.Name, plan.KindStation)
			if fellBack {
				*warnings = append(*warnings, fmt.Sprintf("no station mapping for %q, using %s", place.Name, hub.Name))
			}
			hubs.station = &hub
		default:
			if hub, err := c.geocoder.FindNearest(ctx, place.Coordinates, plan.KindStation, HubSearchRadiusMeters); err == nil {
				hubs.station = &hub
			}
		}
	}

	if needAirport {
		switch {
		case place.Kind == plan.KindAirport:
			p := place
			hubs.airport = &p
		case place.Kind == plan.KindCity:
			hub, fellBack := c.geocoder.ResolveTransferHub(place.Name, plan.KindAirport)
			if fellBack {
				*warnings = append(*warnings, fmt.Sprintf("no airport mapping for %q, using %s", place.Name, hub.Name))
			}
			hubs.airport = &hub
		default:
			if hub, err := c.geocoder.FindNearest(ctx, place.Coordinates, plan.KindAirport, HubSearchRadiusMeters); err == nil {
				hubs.airport = &hub
			}
		}
	}

	return hubs
}

// directCandidates attempts a single-leg itinerary per allowed mode. Train and
// plane legs run between the endpoints' resolved hubs; road legs run door to
// door.
func (c *Composer) directCandidates(ctx context.Context, req PlanRequest, departAfter time.Time, originHubs, destHubs endpointHubs) []plan.Itinerary {
	var out []plan.Itinerary

	for _, mode := range req.Modes {
		switch mode {
		case plan.ModeCar, plan.ModeBus:
			leg, err := c.router.RouteRoad(ctx, req.Origin, req.Destination, mode)
			if err != nil {
				continue
			}
			if it, err := plan.NewItinerary([]plan.Leg{leg}); err == nil {
				out = append(out, it)
			}

		case plan.ModeTrain:
			if originHubs.station == nil || destHubs.station == nil {
				continue
			}
			from, to := *originHubs.station, *destHubs.station
			if from.SameLocation(to) {
				continue
			}
			legs, err := c.router.RouteTrain(ctx, from, to, departAfter)
			if err != nil {
				continue
			}
			for _, leg := range legs {
				if it, err := plan.NewItinerary([]plan.Leg{leg}); err == nil {
					out = append(out, it)
				}
			}

		case plan.ModePlane:
			if plan.HaversineMeters(req.Origin.Coordinates, req.Destination.Coordinates) <= plan.LongHaulThresholdMeters {
				continue
			}
			if originHubs.airport == nil || destHubs.airport == nil {
				continue
			}
			from, to := *originHubs.airport, *destHubs.airport
			if from.SameLocation(to) {
				continue
			}
			leg, err := c.router.RoutePlane(from, to)
			if err != nil {
				continue
			}
			if it, err := plan.NewItinerary([]plan.Leg{leg}); err == nil {
				out = append(out, it)
			}
		}
	}
	return out
}

// chainedCandidates evaluates every access × trunk × egress combination. The
// combinations are independent, so they run concurrently into index-stable
// slots; the returned order matches sequential discovery order.
func (c *Composer) chainedCandidates(ctx context.Context, req PlanRequest, departAfter time.Time, originHubs, destHubs endpointHubs) []plan.Itinerary {
	specs := chainSpecs(req.Modes)
	results := make([]*plan.Itinerary, len(specs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentChains)
	for i, spec := range specs {
		g.Go(func() error {
			if it, ok := c.buildChain(gctx, spec, req, departAfter, originHubs, destHubs); ok {
				results[i] = &it
			}
			return nil
		})
	}
	_ = g.Wait()

	var out []plan.Itinerary
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// buildChain assembles one access → trunk → egress candidate. Any missing leg
// invalidates the whole chain; no partial itineraries are produced.
func (c *Composer) buildChain(ctx context.Context, spec chainSpec, req PlanRequest, departAfter time.Time, originHubs, destHubs endpointHubs) (plan.Itinerary, bool) {
	var fromHub, toHub *plan.Place
	switch spec.trunk {
	case plan.ModeTrain:
		fromHub, toHub = originHubs.station, destHubs.station
	case plan.ModePlane:
		fromHub, toHub = originHubs.airport, destHubs.airport
	}
	if fromHub == nil || toHub == nil || fromHub.SameLocation(*toHub) {
		return plan.Itinerary{}, false
	}
	// A chain whose endpoint already is the hub collapses to a direct
	// candidate; skip it here.
	if req.Origin.SameLocation(*fromHub) || req.Destination.SameLocation(*toHub) {
		return plan.Itinerary{}, false
	}

	access, err := c.router.RouteRoad(ctx, req.Origin, *fromHub, spec.access)
	if err != nil {
		return plan.Itinerary{}, false
	}

	var trunk plan.Leg
	switch spec.trunk {
	case plan.ModeTrain:
		earliest := addMinutes(departAfter, access.DurationMinutes+plan.ConnectionBuffer(spec.access, plan.ModeTrain))
		legs, err := c.router.RouteTrain(ctx, *fromHub, *toHub, earliest)
		if err != nil {
			return plan.Itinerary{}, false
		}
		trunk = legs[0]
	case plan.ModePlane:
		if plan.HaversineMeters(fromHub.Coordinates, toHub.Coordinates) <= plan.LongHaulThresholdMeters {
			return plan.Itinerary{}, false
		}
		trunk, err = c.router.RoutePlane(*fromHub, *toHub)
		if err != nil {
			return plan.Itinerary{}, false
		}
	}

	egress, err := c.router.RouteRoad(ctx, *toHub, req.Destination, spec.egress)
	if err != nil {
		return plan.Itinerary{}, false
	}

	it, err := plan.NewItinerary([]plan.Leg{access, trunk, egress})
	if err != nil {
		return plan.Itinerary{}, false
	}
	return it, true
}

// buildCombined assembles the fixed five-leg car → plane → car → train → car
// itinerary through a heuristically chosen intermediate city, propagating
// departure times through the connection buffers.
func (c *Composer) buildCombined(ctx context.Context, origin, destination plan.Place, originAirport, destStation *plan.Place, departAfter time.Time) (plan.Itinerary, bool) {
	if originAirport == nil || destStation == nil {
		return plan.Itinerary{}, false
	}

	city, ok := c.pickIntermediateCity(origin, destination)
	if !ok {
		return plan.Itinerary{}, false
	}

	toAirport, err := c.router.RouteRoad(ctx, origin, *originAirport, plan.ModeCar)
	if err != nil {
		return plan.Itinerary{}, false
	}
	flight, err := c.router.RoutePlane(*originAirport, city.Airport)
	if err != nil {
		return plan.Itinerary{}, false
	}
	crossCity, err := c.router.RouteRoad(ctx, city.Airport, city.Station, plan.ModeCar)
	if err != nil {
		return plan.Itinerary{}, false
	}

	// Propagate the schedule far enough to know the earliest train departure.
	dep := departAfter
	arr := addMinutes(dep, toAirport.DurationMinutes)
	toAirport = toAirport.WithSchedule(dep, arr)

	dep = addMinutes(arr, plan.ConnectionBuffer(plan.ModeCar, plan.ModePlane))
	arr = addMinutes(dep, flight.DurationMinutes)
	flight = flight.WithSchedule(dep, arr)

	dep = addMinutes(arr, plan.ConnectionBuffer(plan.ModePlane, plan.ModeCar))
	arr = addMinutes(dep, crossCity.DurationMinutes)
	crossCity = crossCity.WithSchedule(dep, arr)

	earliestTrain := addMinutes(arr, plan.ConnectionBuffer(plan.ModeCar, plan.ModeTrain))
	trainLegs, err := c.router.RouteTrain(ctx, city.Station, *destStation, earliestTrain)
	if err != nil {
		return plan.Itinerary{}, false
	}
	train := trainLegs[0]

	fromStation, err := c.router.RouteRoad(ctx, *destStation, destination, plan.ModeCar)
	if err != nil {
		return plan.Itinerary{}, false
	}
	if train.ArrivalTime != nil {
		dep = addMinutes(*train.ArrivalTime, plan.ConnectionBuffer(plan.ModeTrain, plan.ModeCar))
		fromStation = fromStation.WithSchedule(dep, addMinutes(dep, fromStation.DurationMinutes))
	}

	it, err := plan.NewItinerary([]plan.Leg{toAirport, flight, crossCity, train, fromStation})
	if err != nil {
		return plan.Itinerary{}, false
	}
	return it, true
}

// pickIntermediateCity selects the directory city with the smallest detour
// ratio, excluding cities name-matched to either endpoint.
func (c *Composer) pickIntermediateCity(origin, destination plan.Place) (CityHubs, bool) {
	var best CityHubs
	bestRatio := 0.0
	found := false

	for _, city := range c.geocoder.Directory().Cities() {
		if nameMatches(origin.Name, city.Name) || nameMatches(destination.Name, city.Name) {
			continue
		}
		ratio := plan.DetourRatio(origin.Coordinates, city.Coordinates, destination.Coordinates)
		if !found || ratio < bestRatio {
			best, bestRatio, found = city, ratio, true
		}
	}
	return best, found
}

func nameMatches(placeName, cityName string) bool {
	return strings.Contains(strings.ToLower(placeName), strings.ToLower(cityName))
}

func addMinutes(t time.Time, minutes float64) time.Time {
	return t.Add(time.Duration(minutes * float64(time.Minute)))
}
