package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kafka topics used by the planner service.
const (
	// TopicReservationEvents carries reservation lifecycle events published
	// by this service.
	TopicReservationEvents = "reservation.events"

	// TopicReservationStatus carries status updates coming back from carrier
	// back-offices.
	TopicReservationStatus = "reservation.status"
)

// Event types.
const (
	ReservationRequested = "travel.reservation.requested"
	ReservationCancelled = "travel.reservation.cancelled"
	ReservationConfirmed = "travel.reservation.confirmed"
	ReservationCompleted = "travel.reservation.completed"
)

// CloudEvent is the envelope wrapping every message on our topics.
type CloudEvent struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Type   string          `json:"type"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// NewCloudEvent wraps a payload in a CloudEvent envelope.
func NewCloudEvent(source, eventType string, data interface{}) (CloudEvent, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return CloudEvent{}, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return CloudEvent{
		ID:     uuid.NewString(),
		Source: source,
		Type:   eventType,
		Time:   time.Now().UTC(),
		Data:   raw,
	}, nil
}

// ParseData unmarshals the event payload into the given value.
func (e CloudEvent) ParseData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// ReservationRequestedEvent is published when a traveler books an itinerary.
type ReservationRequestedEvent struct {
	ReservationID     uuid.UUID `json:"reservation_id"`
	ReservationNumber string    `json:"reservation_number"`
	TravelerID        uuid.UUID `json:"traveler_id"`
	PriceEUR          float64   `json:"price_eur"`
	LegCount          int       `json:"leg_count"`
	IsRefundable      bool      `json:"is_refundable"`
	OccurredAt        time.Time `json:"occurred_at"`
}

// ReservationCancelledEvent is published when a reservation is cancelled.
type ReservationCancelledEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	TravelerID    uuid.UUID `json:"traveler_id"`
	Reason        string    `json:"reason"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ReservationStatusEvent is consumed from carrier back-offices to advance a
// reservation through its lifecycle.
type ReservationStatusEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	Carrier       string    `json:"carrier"`
	OccurredAt    time.Time `json:"occurred_at"`
}
