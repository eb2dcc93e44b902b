package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/accessway-travel/service-planner/internal/domain"
	"github.com/accessway-travel/service-planner/internal/domain/plan"
	"github.com/twpayne/go-polyline"
)

// MapboxDirections is a Directions implementation backed by the Mapbox
// Directions API.
type MapboxDirections struct {
	baseURL     string
	accessToken string
	client      *http.Client
}

// NewMapboxDirections creates a MapboxDirections client.
func NewMapboxDirections(baseURL, accessToken string, client *http.Client) *MapboxDirections {
	if client == nil {
		client = http.DefaultClient
	}
	return &MapboxDirections{baseURL: baseURL, accessToken: accessToken, client: client}
}

type mapboxRouteResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// GetRoute fetches driving geometry, distance, and duration between two
// coordinates.
func (m *MapboxDirections) GetRoute(ctx context.Context, from, to plan.Coordinates, profile RouteProfile) (Route, error) {
	endpoint := fmt.Sprintf("%s/directions/v5/mapbox/%s/%f,%f;%f,%f",
		m.baseURL, profile, from.Lon, from.Lat, to.Lon, to.Lat)

	q := url.Values{}
	q.Set("access_token", m.accessToken)
	q.Set("geometries", "polyline")
	q.Set("overview", "full")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return Route{}, domain.NewUnavailableError("mapbox", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return Route{}, domain.NewUnavailableError("mapbox", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Route{}, domain.NewUnavailableError("mapbox", fmt.Errorf("status %d", resp.StatusCode))
	}

	var body mapboxRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Route{}, domain.NewUnavailableError("mapbox", err)
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return Route{}, ErrNotFound
	}

	best := body.Routes[0]
	coords, _, err := polyline.DecodeCoords([]byte(best.Geometry))
	if err != nil {
		return Route{}, domain.NewUnavailableError("mapbox", fmt.Errorf("bad polyline: %w", err))
	}

	// Polyline order is lat,lng.
	geometry := make([]plan.Coordinates, len(coords))
	for i, c := range coords {
		geometry[i] = plan.Coordinates{Lat: c[0], Lon: c[1]}
	}

	return Route{
		Geometry:        geometry,
		DistanceMeters:  best.Distance,
		DurationSeconds: best.Duration,
	}, nil
}
