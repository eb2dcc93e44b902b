package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/accessway-travel/service-planner/internal/domain"
	"github.com/accessway-travel/service-planner/internal/domain/plan"
)

// PhotonPlaces is a PlaceSearch implementation backed by a Photon geocoding
// API.
type PhotonPlaces struct {
	baseURL string
	client  *http.Client
}

// NewPhotonPlaces creates a PhotonPlaces client.
func NewPhotonPlaces(baseURL string, client *http.Client) *PhotonPlaces {
	if client == nil {
		client = http.DefaultClient
	}
	return &PhotonPlaces{baseURL: baseURL, client: client}
}

// osmTagForKind maps a place kind to the Photon osm_tag filter.
func osmTagForKind(kind plan.PlaceKind) string {
	switch kind {
	case plan.KindStation:
		return "railway:station"
	case plan.KindAirport:
		return "aeroway:aerodrome"
	case plan.KindBusStop:
		return "highway:bus_stop"
	case plan.KindCity:
		return "place:city"
	default:
		return ""
	}
}

// kindForOSMValue maps Photon osm_key/osm_value pairs back to a place kind.
func kindForOSMValue(key, value string) plan.PlaceKind {
	switch {
	case key == "railway" && value == "station":
		return plan.KindStation
	case key == "aeroway":
		return plan.KindAirport
	case key == "highway" && value == "bus_stop":
		return plan.KindBusStop
	case key == "place" && (value == "city" || value == "town"):
		return plan.KindCity
	default:
		return plan.KindAddress
	}
}

type photonResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			OSMID   int64  `json:"osm_id"`
			OSMKey  string `json:"osm_key"`
			OSMVal  string `json:"osm_value"`
			Name    string `json:"name"`
			City    string `json:"city"`
			Country string `json:"country"`
		} `json:"properties"`
	} `json:"features"`
}

func (p *PhotonPlaces) query(ctx context.Context, params url.Values) ([]plan.Place, error) {
	endpoint := fmt.Sprintf("%s/api?%s", p.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.NewUnavailableError("photon", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, domain.NewUnavailableError("photon", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewUnavailableError("photon", fmt.Errorf("status %d", resp.StatusCode))
	}

	var body photonResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.NewUnavailableError("photon", err)
	}

	places := make([]plan.Place, 0, len(body.Features))
	for _, f := range body.Features {
		if len(f.Geometry.Coordinates) < 2 || f.Properties.Name == "" {
			continue
		}
		place, err := plan.NewPlace(
			"osm:"+strconv.FormatInt(f.Properties.OSMID, 10),
			f.Properties.Name,
			kindForOSMValue(f.Properties.OSMKey, f.Properties.OSMVal),
			plan.Coordinates{Lon: f.Geometry.Coordinates[0], Lat: f.Geometry.Coordinates[1]},
		)
		if err != nil {
			continue
		}
		places = append(places, place)
	}
	return places, nil
}

// SearchByText resolves a free-text query into places, optionally constrained
// to the given kinds.
func (p *PhotonPlaces) SearchByText(ctx context.Context, query string, kinds []plan.PlaceKind) ([]plan.Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "10")
	for _, k := range kinds {
		if tag := osmTagForKind(k); tag != "" {
			params.Add("osm_tag", tag)
		}
	}
	return p.query(ctx, params)
}

// FindNearest returns the closest place of the given kind within radiusMeters
// of the coordinate, or ErrNotFound.
func (p *PhotonPlaces) FindNearest(ctx context.Context, coord plan.Coordinates, kind plan.PlaceKind, radiusMeters float64) (plan.Place, error) {
	params := url.Values{}
	params.Set("q", string(kind))
	params.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
	params.Set("limit", "20")
	if tag := osmTagForKind(kind); tag != "" {
		params.Set("osm_tag", tag)
	}

	candidates, err := p.query(ctx, params)
	if err != nil {
		return plan.Place{}, err
	}

	best := plan.Place{}
	bestDist := radiusMeters
	found := false
	for _, c := range candidates {
		if c.Kind != kind {
			continue
		}
		d := plan.HaversineMeters(coord, c.Coordinates)
		if d <= bestDist {
			best, bestDist, found = c, d, true
		}
	}
	if !found {
		return plan.Place{}, ErrNotFound
	}
	return best, nil
}
