package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/accessway-travel/service-planner/internal/domain"
)

const navitiaTimeLayout = "20060102T150405"

// NavitiaRail is a RailJourneys implementation backed by a Navitia-compatible
// journey API (SNCF).
type NavitiaRail struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewNavitiaRail creates a NavitiaRail client.
func NewNavitiaRail(baseURL, apiKey string, client *http.Client) *NavitiaRail {
	if client == nil {
		client = http.DefaultClient
	}
	return &NavitiaRail{baseURL: baseURL, apiKey: apiKey, client: client}
}

type navitiaJourneysResponse struct {
	Journeys []struct {
		DepartureDateTime string `json:"departure_date_time"`
		ArrivalDateTime   string `json:"arrival_date_time"`
		Sections          []struct {
			DisplayInformations struct {
				Headsign string `json:"headsign"`
				Code     string `json:"code"`
			} `json:"display_informations"`
		} `json:"sections"`
	} `json:"journeys"`
}

// GetJourneys fetches rail journeys between two stations departing after the
// given time. Alternatives keep the provider's ranking.
func (n *NavitiaRail) GetJourneys(ctx context.Context, fromStationID, toStationID string, departAfter time.Time) ([]Journey, error) {
	q := url.Values{}
	q.Set("from", fromStationID)
	q.Set("to", toStationID)
	q.Set("datetime", departAfter.UTC().Format(navitiaTimeLayout))

	endpoint := fmt.Sprintf("%s/v1/coverage/sncf/journeys?%s", n.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.NewUnavailableError("navitia", err)
	}
	req.Header.Set("Authorization", n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, domain.NewUnavailableError("navitia", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewUnavailableError("navitia", fmt.Errorf("status %d", resp.StatusCode))
	}

	var body navitiaJourneysResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.NewUnavailableError("navitia", err)
	}
	if len(body.Journeys) == 0 {
		return nil, ErrNotFound
	}

	journeys := make([]Journey, 0, len(body.Journeys))
	for _, j := range body.Journeys {
		departure, err := time.Parse(navitiaTimeLayout, j.DepartureDateTime)
		if err != nil {
			continue
		}
		arrival, err := time.Parse(navitiaTimeLayout, j.ArrivalDateTime)
		if err != nil || !arrival.After(departure) {
			continue
		}

		carrier := ""
		for _, s := range j.Sections {
			if s.DisplayInformations.Headsign != "" {
				carrier = s.DisplayInformations.Headsign
				break
			}
			if s.DisplayInformations.Code != "" {
				carrier = s.DisplayInformations.Code
			}
		}

		journeys = append(journeys, Journey{
			Departure: departure,
			Arrival:   arrival,
			CarrierID: carrier,
		})
	}

	if len(journeys) == 0 {
		return nil, ErrNotFound
	}
	return journeys, nil
}
