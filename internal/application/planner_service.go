package application

import (
	"context"
	"time"

	"github.com/accessway-travel/service-planner/internal/domain"
	"github.com/accessway-travel/service-planner/internal/domain/plan"
	"github.com/accessway-travel/service-planner/internal/planner"
	"go.uber.org/zap"
)

// CoordinatesDTO is the wire form of a longitude/latitude pair.
type CoordinatesDTO struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// PlaceDTO is the wire form of a place in plan requests.
type PlaceDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name" binding:"required"`
	Kind        string          `json:"kind"`
	Coordinates *CoordinatesDTO `json:"coordinates" binding:"required"`
}

// PlanJourneyRequest holds the data for one journey search.
type PlanJourneyRequest struct {
	Origin      *PlaceDTO  `json:"origin" binding:"required"`
	Destination *PlaceDTO  `json:"destination" binding:"required"`
	Modes       []string   `json:"modes"`
	DepartAfter *time.Time `json:"depart_after"`
}

// PlanJourneyResponse is the response for a journey search. An empty
// itinerary list is a valid result, not an error.
type PlanJourneyResponse struct {
	Itineraries []plan.Itinerary `json:"itineraries"`
	Warnings    []string         `json:"warnings,omitempty"`
}

// PlannerService is the application service for journey planning.
type PlannerService struct {
	composer *planner.Composer
	logger   *zap.Logger
}

// NewPlannerService creates a new PlannerService.
func NewPlannerService(composer *planner.Composer, logger *zap.Logger) *PlannerService {
	return &PlannerService{composer: composer, logger: logger}
}

// PlanJourney runs the composer for the requested origin, destination, and
// allowed modes.
func (s *PlannerService) PlanJourney(ctx context.Context, req PlanJourneyRequest) (*PlanJourneyResponse, error) {
	origin, err := toPlace(req.Origin)
	if err != nil {
		return nil, err
	}
	destination, err := toPlace(req.Destination)
	if err != nil {
		return nil, err
	}

	modes := make([]plan.Mode, 0, len(req.Modes))
	for _, m := range req.Modes {
		modes = append(modes, plan.Mode(m))
	}

	planReq := planner.PlanRequest{
		Origin:      origin,
		Destination: destination,
		Modes:       modes,
	}
	if req.DepartAfter != nil {
		planReq.DepartAfter = *req.DepartAfter
	}

	result, err := s.composer.Plan(ctx, planReq)
	if err != nil {
		return nil, err
	}

	s.logger.Info("journey planned",
		zap.String("origin", origin.Name),
		zap.String("destination", destination.Name),
		zap.Int("itineraries", len(result.Itineraries)),
	)

	return &PlanJourneyResponse{
		Itineraries: result.Itineraries,
		Warnings:    result.Warnings,
	}, nil
}

func toPlace(dto *PlaceDTO) (plan.Place, error) {
	if dto == nil || dto.Coordinates == nil {
		return plan.Place{}, domain.NewValidationError("place with coordinates is required")
	}
	kind := plan.PlaceKind(dto.Kind)
	if dto.Kind == "" {
		kind = plan.KindAddress
	}
	return plan.NewPlace(dto.ID, dto.Name, kind, plan.Coordinates{Lon: dto.Coordinates.Lon, Lat: dto.Coordinates.Lat})
}
