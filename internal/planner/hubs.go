package planner

import (
	"strings"

	"github.com/accessway-travel/service-planner/internal/domain/plan"
)

// CityHubs is one entry of the curated transfer-hub directory: a city with
// its principal station and airport.
type CityHubs struct {
	Name        string
	Coordinates plan.Coordinates
	Station     plan.Place
	Airport     plan.Place
}

// HubDirectory is the curated city → hub mapping used for named-city lookups
// and as the candidate list for the intermediate-city detour heuristic.
type HubDirectory struct {
	cities      []CityHubs
	defaultCity string
}

// DefaultCityName is the fallback city used when a requested name is not in
// the directory.
const DefaultCityName = "Paris"

func hub(id, name string, kind plan.PlaceKind, lon, lat float64) plan.Place {
	return plan.Place{ID: id, Name: name, Kind: kind, Coordinates: plan.Coordinates{Lon: lon, Lat: lat}}
}

// NewHubDirectory builds the directory of major French cities.
func NewHubDirectory() *HubDirectory {
	return &HubDirectory{
		defaultCity: DefaultCityName,
		cities: []CityHubs{
			{
				Name:        "Paris",
				Coordinates: plan.Coordinates{Lon: 2.3522, Lat: 48.8566},
				Station:     hub("stop_area:SNCF:87686006", "Paris Gare de Lyon", plan.KindStation, 2.3730, 48.8443),
				Airport:     hub("airport:CDG", "Paris Charles de Gaulle", plan.KindAirport, 2.5479, 49.0097),
			},
			{
				Name:        "Lyon",
				Coordinates: plan.Coordinates{Lon: 4.8357, Lat: 45.7640},
				Station:     hub("stop_area:SNCF:87723197", "Lyon Part-Dieu", plan.KindStation, 4.8590, 45.7606),
				Airport:     hub("airport:LYS", "Lyon Saint-Exupéry", plan.KindAirport, 5.0887, 45.7256),
			},
			{
				Name:        "Marseille",
				Coordinates: plan.Coordinates{Lon: 5.3698, Lat: 43.2965},
				Station:     hub("stop_area:SNCF:87751008", "Marseille Saint-Charles", plan.KindStation, 5.3802, 43.3027),
				Airport:     hub("airport:MRS", "Marseille Provence", plan.KindAirport, 5.2145, 43.4393),
			},
			{
				Name:        "Bordeaux",
				Coordinates: plan.Coordinates{Lon: -0.5792, Lat: 44.8378},
				Station:     hub("stop_area:SNCF:87581009", "Bordeaux Saint-Jean", plan.KindStation, -0.5560, 44.8256),
				Airport:     hub("airport:BOD", "Bordeaux Mérignac", plan.KindAirport, -0.7156, 44.8283),
			},
			{
				Name:        "Toulouse",
				Coordinates: plan.Coordinates{Lon: 1.4442, Lat: 43.6047},
				Station:     hub("stop_area:SNCF:87611004", "Toulouse Matabiau", plan.KindStation, 1.4539, 43.6111),
				Airport:     hub("airport:TLS", "Toulouse Blagnac", plan.KindAirport, 1.3675, 43.6291),
			},
			{
				Name:        "Nantes",
				Coordinates: plan.Coordinates{Lon: -1.5534, Lat: 47.2184},
				Station:     hub("stop_area:SNCF:87481002", "Gare de Nantes", plan.KindStation, -1.5420, 47.2175),
				Airport:     hub("airport:NTE", "Nantes Atlantique", plan.KindAirport, -1.6078, 47.1532),
			},
			{
				Name:        "Lille",
				Coordinates: plan.Coordinates{Lon: 3.0573, Lat: 50.6292},
				Station:     hub("stop_area:SNCF:87286005", "Lille Flandres", plan.KindStation, 3.0702, 50.6367),
				Airport:     hub("airport:LIL", "Lille Lesquin", plan.KindAirport, 3.0897, 50.5633),
			},
			{
				Name:        "Strasbourg",
				Coordinates: plan.Coordinates{Lon: 7.7521, Lat: 48.5734},
				Station:     hub("stop_area:SNCF:87212027", "Gare de Strasbourg", plan.KindStation, 7.7348, 48.5850),
				Airport:     hub("airport:SXB", "Strasbourg Entzheim", plan.KindAirport, 7.6282, 48.5383),
			},
			{
				Name:        "Nice",
				Coordinates: plan.Coordinates{Lon: 7.2620, Lat: 43.7102},
				Station:     hub("stop_area:SNCF:87756056", "Nice-Ville", plan.KindStation, 7.2619, 43.7046),
				Airport:     hub("airport:NCE", "Nice Côte d'Azur", plan.KindAirport, 7.2159, 43.6584),
			},
		},
	}
}

// Cities returns the full candidate list, in directory order.
func (d *HubDirectory) Cities() []CityHubs {
	return d.cities
}

// Lookup returns the directory entry whose name matches (case-insensitive),
// or false when the city is unknown.
func (d *HubDirectory) Lookup(city string) (CityHubs, bool) {
	for _, c := range d.cities {
		if strings.EqualFold(c.Name, city) {
			return c, true
		}
	}
	return CityHubs{}, false
}

// Default returns the fallback city's entry.
func (d *HubDirectory) Default() CityHubs {
	c, _ := d.Lookup(d.defaultCity)
	return c
}
