package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlace_Validation(t *testing.T) {
	tests := []struct {
		name      string
		placeName string
		kind      PlaceKind
		coords    Coordinates
		wantErr   bool
	}{
		{"valid address", "12 Rue des Lilas", KindAddress, Coordinates{Lon: 2.35, Lat: 48.85}, false},
		{"valid station", "Gare de Lyon", KindStation, Coordinates{Lon: 2.373, Lat: 48.844}, false},
		{"missing name", "", KindAddress, Coordinates{Lon: 2.35, Lat: 48.85}, true},
		{"bad kind", "somewhere", PlaceKind("castle"), Coordinates{Lon: 2.35, Lat: 48.85}, true},
		{"longitude out of range", "nowhere", KindAddress, Coordinates{Lon: 181, Lat: 0}, true},
		{"latitude out of range", "nowhere", KindAddress, Coordinates{Lon: 0, Lat: -91}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlace("id", tt.placeName, tt.kind, tt.coords)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCoordinatesEqual_Epsilon(t *testing.T) {
	base := Coordinates{Lon: 2.3522, Lat: 48.8566}

	assert.True(t, base.Equal(base))
	// Two provider lookups of the same hub differing in rounding precision.
	assert.True(t, base.Equal(Coordinates{Lon: 2.35215, Lat: 48.85655}))
	assert.False(t, base.Equal(Coordinates{Lon: 2.3622, Lat: 48.8566}))
}

func TestSameLocation(t *testing.T) {
	a, err := NewPlace("p1", "Orly (search)", KindAirport, Coordinates{Lon: 2.3794, Lat: 48.7262})
	require.NoError(t, err)
	b, err := NewPlace("p2", "Orly (nearest)", KindAirport, Coordinates{Lon: 2.37945, Lat: 48.72618})
	require.NoError(t, err)

	assert.True(t, a.SameLocation(b))
}

func TestPlaceKind_IsHub(t *testing.T) {
	assert.True(t, KindStation.IsHub())
	assert.True(t, KindAirport.IsHub())
	assert.False(t, KindAddress.IsHub())
	assert.False(t, KindCity.IsHub())
}
