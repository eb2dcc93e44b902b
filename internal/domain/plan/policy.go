package plan

// Flight estimation constants. There is no live flight-inventory provider;
// plane legs are synthesized from great-circle distance.
const (
	PlaneCruiseSpeedKmh = 800.0

	// LongHaulThresholdMeters is the minimum great-circle distance below
	// which plane candidates are not offered.
	LongHaulThresholdMeters = 400_000.0
)

// Connection buffers, in minutes, inserted between legs when propagating
// schedules through a multi-leg itinerary. Policy values, not derived from any
// timetable.
const (
	InitialBufferMinutes           = 40.0
	AirportConnectionBufferMinutes = 60.0
	PostFlightBufferMinutes        = 30.0
	PostCarBufferMinutes           = 20.0
	TransferBufferMinutes          = 45.0
)

// Ranking policy: score = duration in minutes + price/100, ascending. Ties
// keep first-discovered order.
const (
	ScorePriceWeight = 1.0 / 100.0

	// MaxItineraries is the number of top-ranked candidates returned.
	MaxItineraries = 5
)

// ConnectionBuffer returns the buffer, in minutes, to insert before boarding
// the next leg, given the mode just completed and the mode about to start.
func ConnectionBuffer(previous, next Mode) float64 {
	switch {
	case next == ModePlane:
		return AirportConnectionBufferMinutes
	case previous == ModePlane:
		return PostFlightBufferMinutes
	case previous == ModeCar:
		return PostCarBufferMinutes
	default:
		return TransferBufferMinutes
	}
}
