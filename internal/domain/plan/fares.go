package plan

import (
	"fmt"
	"math"
)

// FareSchedule computes the ticket or fuel price for one leg. Implementations
// are pure policy; injecting the schedule keeps expected prices pinnable in
// tests.
type FareSchedule interface {
	// Price returns the fare in EUR, rounded to cents, for a leg of the given
	// mode and distance.
	Price(mode Mode, distanceMeters float64) (float64, error)
}

// Fare policy constants, EUR. Base fare plus per-kilometre rate per mode; car
// legs carry only a fuel cost.
const (
	TrainBaseFareEUR  = 10.00
	TrainFarePerKmEUR = 0.15

	BusBaseFareEUR  = 4.00
	BusFarePerKmEUR = 0.09

	PlaneBaseFareEUR  = 40.00
	PlaneFarePerKmEUR = 0.11

	CarFuelCostPerKmEUR = 0.15
)

// StandardFareSchedule implements the platform's published fare formulas.
type StandardFareSchedule struct{}

// NewStandardFareSchedule creates a StandardFareSchedule.
func NewStandardFareSchedule() *StandardFareSchedule {
	return &StandardFareSchedule{}
}

// Price computes the fare for one leg.
func (s *StandardFareSchedule) Price(mode Mode, distanceMeters float64) (float64, error) {
	if distanceMeters < 0 {
		return 0, fmt.Errorf("distance cannot be negative")
	}
	km := distanceMeters / 1000

	switch mode {
	case ModeTrain:
		return RoundCents(TrainBaseFareEUR + TrainFarePerKmEUR*km), nil
	case ModeBus:
		return RoundCents(BusBaseFareEUR + BusFarePerKmEUR*km), nil
	case ModePlane:
		return RoundCents(PlaneBaseFareEUR + PlaneFarePerKmEUR*km), nil
	case ModeCar:
		return RoundCents(CarFuelCostPerKmEUR * km), nil
	default:
		return 0, fmt.Errorf("unknown mode for pricing: %s", mode)
	}
}

// RoundCents rounds an EUR amount to two decimal places, half away from zero.
func RoundCents(amount float64) float64 {
	if amount < 0 {
		return -math.Floor(-amount*100+0.5) / 100
	}
	return math.Floor(amount*100+0.5) / 100
}
