package plan

import (
	"github.com/accessway-travel/service-planner/internal/domain"
	"github.com/google/uuid"
)

// Itinerary is an ordered, non-empty chain of legs forming one trip option.
// Itineraries are created fresh per search, ranked, and never mutated after
// assembly.
type Itinerary struct {
	ID                   uuid.UUID `json:"id"`
	Legs                 []Leg     `json:"legs"`
	TotalDurationMinutes float64   `json:"total_duration_minutes"`
	TotalDistanceMeters  float64   `json:"total_distance_meters"`
	PriceEUR             float64   `json:"price_eur"`
	IsRefundable         bool      `json:"is_refundable"`
}

// NewItinerary assembles legs into an itinerary, verifying leg continuity and
// aggregating distance, price, and duration. Inter-leg connection buffers are
// added to the total duration; single-leg itineraries carry no buffer.
func NewItinerary(legs []Leg) (Itinerary, error) {
	if len(legs) == 0 {
		return Itinerary{}, domain.NewValidationError("itinerary requires at least one leg")
	}
	for i := 0; i < len(legs)-1; i++ {
		if !legs[i].To.SameLocation(legs[i+1].From) {
			return Itinerary{}, domain.NewValidationError("itinerary legs are not contiguous")
		}
	}

	var distance, duration, price float64
	refundable := true
	for i, leg := range legs {
		distance += leg.DistanceMeters
		duration += leg.DurationMinutes
		price += leg.PriceEUR
		if !leg.Mode.IsRefundable() {
			refundable = false
		}
		if i > 0 {
			duration += ConnectionBuffer(legs[i-1].Mode, leg.Mode)
		}
	}

	return Itinerary{
		ID:                   uuid.New(),
		Legs:                 legs,
		TotalDurationMinutes: duration,
		TotalDistanceMeters:  distance,
		PriceEUR:             RoundCents(price),
		IsRefundable:         refundable,
	}, nil
}

// Origin returns the first leg's departure place.
func (it Itinerary) Origin() Place {
	return it.Legs[0].From
}

// Destination returns the last leg's arrival place.
func (it Itinerary) Destination() Place {
	return it.Legs[len(it.Legs)-1].To
}

// Score returns the ranking score: lower is better.
func (it Itinerary) Score() float64 {
	return it.TotalDurationMinutes + it.PriceEUR*ScorePriceWeight
}
