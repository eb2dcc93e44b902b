package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	parisCenter     = Coordinates{Lon: 2.3522, Lat: 48.8566}
	marseilleCenter = Coordinates{Lon: 5.3698, Lat: 43.2965}
	lyonCenter      = Coordinates{Lon: 4.8357, Lat: 45.7640}
)

func TestHaversineMeters_KnownDistance(t *testing.T) {
	// Paris to Marseille is roughly 660 km great-circle.
	d := HaversineMeters(parisCenter, marseilleCenter)
	assert.InDelta(t, 661_000, d, 5_000)
}

func TestHaversineMeters_Symmetric(t *testing.T) {
	assert.Equal(t,
		HaversineMeters(parisCenter, marseilleCenter),
		HaversineMeters(marseilleCenter, parisCenter),
	)
}

func TestHaversineMeters_ZeroForSamePoint(t *testing.T) {
	assert.Zero(t, HaversineMeters(parisCenter, parisCenter))
}

func TestDetourRatio(t *testing.T) {
	// Lyon lies close to the Paris-Marseille axis, so the detour through it
	// is small.
	ratio := DetourRatio(parisCenter, lyonCenter, marseilleCenter)
	assert.Greater(t, ratio, 1.0)
	assert.Less(t, ratio, 1.1)
}

func TestDetourRatio_DegenerateDirect(t *testing.T) {
	ratio := DetourRatio(parisCenter, lyonCenter, parisCenter)
	assert.True(t, ratio > 1e9, "zero direct distance should give an unusable ratio")
}
