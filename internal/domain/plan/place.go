package plan

import (
	"fmt"
	"math"

	"github.com/accessway-travel/service-planner/internal/domain"
)

// CoordEpsilon is the tolerance, in degrees, used when deciding whether two
// independently looked-up coordinates describe the same physical location.
// Providers round the same hub to different precisions.
const CoordEpsilon = 1e-4

// Coordinates is a WGS84 longitude/latitude pair.
type Coordinates struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Validate checks that the pair lies within valid lon/lat ranges.
func (c Coordinates) Validate() error {
	if c.Lon < -180 || c.Lon > 180 {
		return domain.NewValidationError(fmt.Sprintf("longitude out of range: %f", c.Lon))
	}
	if c.Lat < -90 || c.Lat > 90 {
		return domain.NewValidationError(fmt.Sprintf("latitude out of range: %f", c.Lat))
	}
	return nil
}

// Equal reports whether both coordinates match within CoordEpsilon.
func (c Coordinates) Equal(other Coordinates) bool {
	return math.Abs(c.Lon-other.Lon) <= CoordEpsilon && math.Abs(c.Lat-other.Lat) <= CoordEpsilon
}

// PlaceKind classifies a place and determines which transfer-hub lookups apply.
type PlaceKind string

const (
	KindHome    PlaceKind = "home"
	KindStation PlaceKind = "station"
	KindBusStop PlaceKind = "bus_stop"
	KindAddress PlaceKind = "address"
	KindAirport PlaceKind = "airport"
	KindCity    PlaceKind = "city"
)

// IsValid returns true if the kind is recognized.
func (k PlaceKind) IsValid() bool {
	switch k {
	case KindHome, KindStation, KindBusStop, KindAddress, KindAirport, KindCity:
		return true
	}
	return false
}

// IsHub returns true if places of this kind can serve as transfer points.
func (k PlaceKind) IsHub() bool {
	return k == KindStation || k == KindAirport
}

// Place is an addressable point of interest. Places are immutable after
// construction and are never persisted by the planner core.
type Place struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Kind        PlaceKind   `json:"kind"`
	Coordinates Coordinates `json:"coordinates"`
}

// NewPlace constructs a validated Place.
func NewPlace(id, name string, kind PlaceKind, coords Coordinates) (Place, error) {
	if name == "" {
		return Place{}, domain.NewValidationError("place name is required")
	}
	if !kind.IsValid() {
		return Place{}, domain.NewValidationError(fmt.Sprintf("invalid place kind: %s", kind))
	}
	if err := coords.Validate(); err != nil {
		return Place{}, err
	}
	return Place{ID: id, Name: name, Kind: kind, Coordinates: coords}, nil
}

// SameLocation reports whether two places describe the same physical location,
// regardless of which provider produced them.
func (p Place) SameLocation(other Place) bool {
	return p.Coordinates.Equal(other.Coordinates)
}
