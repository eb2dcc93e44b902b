package plan

import (
	"fmt"
	"time"

	"github.com/accessway-travel/service-planner/internal/domain"
)

// Mode represents a single transport mode for one leg.
type Mode string

const (
	ModeCar   Mode = "car"
	ModeBus   Mode = "bus"
	ModeTrain Mode = "train"
	ModePlane Mode = "plane"
)

// IsValid returns true if the mode is recognized.
func (m Mode) IsValid() bool {
	switch m {
	case ModeCar, ModeBus, ModeTrain, ModePlane:
		return true
	}
	return false
}

// IsSurface returns true for modes usable as access/egress legs to a hub.
func (m Mode) IsSurface() bool {
	return m == ModeCar || m == ModeBus
}

// IsTrunk returns true for modes usable as the long-distance middle leg.
func (m Mode) IsTrunk() bool {
	return m == ModeTrain || m == ModePlane
}

// IsRefundable returns true for modes whose tickets are refundable by policy.
func (m Mode) IsRefundable() bool {
	return m == ModeBus || m == ModeTrain
}

// Leg is one continuous movement by a single transport mode between two
// places. Legs are assembled into itineraries and do not outlive them.
type Leg struct {
	Mode            Mode          `json:"mode"`
	From            Place         `json:"from"`
	To              Place         `json:"to"`
	Geometry        []Coordinates `json:"geometry"`
	DistanceMeters  float64       `json:"distance_meters"`
	DurationMinutes float64       `json:"duration_minutes"`
	PriceEUR        float64       `json:"price_eur"`
	CarrierID       string        `json:"carrier_id,omitempty"`
	DepartureTime   *time.Time    `json:"departure_time,omitempty"`
	ArrivalTime     *time.Time    `json:"arrival_time,omitempty"`
}

// NewLeg constructs a validated Leg. The geometry must at minimum span the two
// endpoints; when a provider returns no polyline the endpoints are used.
func NewLeg(mode Mode, from, to Place, geometry []Coordinates, distanceMeters, durationMinutes, priceEUR float64) (Leg, error) {
	if !mode.IsValid() {
		return Leg{}, domain.NewValidationError(fmt.Sprintf("invalid transport mode: %s", mode))
	}
	if distanceMeters < 0 {
		return Leg{}, domain.NewValidationError("leg distance cannot be negative")
	}
	if durationMinutes <= 0 {
		return Leg{}, domain.NewValidationError("leg duration must be positive")
	}
	if len(geometry) == 0 {
		geometry = []Coordinates{from.Coordinates, to.Coordinates}
	}
	if !geometry[0].Equal(from.Coordinates) || !geometry[len(geometry)-1].Equal(to.Coordinates) {
		return Leg{}, domain.NewValidationError("leg geometry does not span its endpoints")
	}
	return Leg{
		Mode:            mode,
		From:            from,
		To:              to,
		Geometry:        geometry,
		DistanceMeters:  distanceMeters,
		DurationMinutes: durationMinutes,
		PriceEUR:        priceEUR,
	}, nil
}

// WithSchedule returns a copy of the leg carrying absolute departure and
// arrival timestamps.
func (l Leg) WithSchedule(departure, arrival time.Time) Leg {
	l.DepartureTime = &departure
	l.ArrivalTime = &arrival
	return l
}

// WithCarrier returns a copy of the leg carrying a provider-assigned carrier
// identifier (train number, flight number).
func (l Leg) WithCarrier(id string) Leg {
	l.CarrierID = id
	return l
}
