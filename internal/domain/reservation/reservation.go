package reservation

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/accessway-travel/service-planner/internal/domain"
	"github.com/accessway-travel/service-planner/internal/domain/plan"
	"github.com/google/uuid"
)

const reservationNumberChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Reservation is the aggregate root for a traveler's booked itinerary. The
// itinerary is stored as an immutable snapshot of the plan the traveler chose.
type Reservation struct {
	id                uuid.UUID
	reservationNumber string
	travelerID        uuid.UUID
	status            Status
	itinerary         plan.Itinerary
	priceEUR          float64
	currency          string
	assistanceNote    string
	cancelNote        string

	confirmedAt *time.Time
	cancelledAt *time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// generateReservationNumber creates a reservation number in the format "RV-XXXXXX".
func generateReservationNumber() (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(reservationNumberChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate reservation number: %w", err)
		}
		result[i] = reservationNumberChars[n.Int64()]
	}
	return "RV-" + string(result), nil
}

// NewReservation creates a new Reservation aggregate with status=requested.
func NewReservation(travelerID uuid.UUID, itinerary plan.Itinerary, assistanceNote string) (*Reservation, error) {
	if travelerID == uuid.Nil {
		return nil, domain.NewValidationError("traveler ID is required")
	}
	if len(itinerary.Legs) == 0 {
		return nil, domain.NewValidationError("itinerary must contain at least one leg")
	}
	if itinerary.PriceEUR < 0 {
		return nil, domain.NewValidationError("itinerary price cannot be negative")
	}

	number, err := generateReservationNumber()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Reservation{
		id:                uuid.New(),
		reservationNumber: number,
		travelerID:        travelerID,
		status:            StatusRequested,
		itinerary:         itinerary,
		priceEUR:          itinerary.PriceEUR,
		currency:          "EUR",
		assistanceNote:    assistanceNote,
		version:           1,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// Reconstruct rebuilds a Reservation from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	reservationNumber string,
	travelerID uuid.UUID,
	status Status,
	itinerary plan.Itinerary,
	priceEUR float64,
	currency string,
	assistanceNote string,
	cancelNote string,
	confirmedAt *time.Time,
	cancelledAt *time.Time,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:                id,
		reservationNumber: reservationNumber,
		travelerID:        travelerID,
		status:            status,
		itinerary:         itinerary,
		priceEUR:          priceEUR,
		currency:          currency,
		assistanceNote:    assistanceNote,
		cancelNote:        cancelNote,
		confirmedAt:       confirmedAt,
		cancelledAt:       cancelledAt,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// ID returns the reservation's unique identifier.
func (r *Reservation) ID() uuid.UUID { return r.id }

// Number returns the human-readable reservation number.
func (r *Reservation) Number() string { return r.reservationNumber }

// TravelerID returns the traveler's user ID.
func (r *Reservation) TravelerID() uuid.UUID { return r.travelerID }

// Status returns the current reservation status.
func (r *Reservation) Status() Status { return r.status }

// Itinerary returns the booked itinerary snapshot.
func (r *Reservation) Itinerary() plan.Itinerary { return r.itinerary }

// PriceEUR returns the total price in EUR.
func (r *Reservation) PriceEUR() float64 { return r.priceEUR }

// Currency returns the currency code.
func (r *Reservation) Currency() string { return r.currency }

// AssistanceNote returns the traveler's mobility-assistance note.
func (r *Reservation) AssistanceNote() string { return r.assistanceNote }

// CancelNote returns the cancellation reason.
func (r *Reservation) CancelNote() string { return r.cancelNote }

// ConfirmedAt returns when the reservation was confirmed by the carriers.
func (r *Reservation) ConfirmedAt() *time.Time { return r.confirmedAt }

// CancelledAt returns when the reservation was cancelled.
func (r *Reservation) CancelledAt() *time.Time { return r.cancelledAt }

// Version returns the entity version for optimistic locking.
func (r *Reservation) Version() int64 { return r.version }

// CreatedAt returns the creation timestamp.
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }

// Confirm transitions the reservation from requested to confirmed.
func (r *Reservation) Confirm() error {
	if !r.status.CanTransitionTo(StatusConfirmed) {
		return domain.NewInvalidStateError(string(r.status), string(StatusConfirmed))
	}
	now := time.Now().UTC()
	r.status = StatusConfirmed
	r.confirmedAt = &now
	r.updatedAt = now
	return nil
}

// Start transitions the reservation to in_progress when travel begins.
func (r *Reservation) Start() error {
	if !r.status.CanTransitionTo(StatusInProgress) {
		return domain.NewInvalidStateError(string(r.status), string(StatusInProgress))
	}
	r.status = StatusInProgress
	r.updatedAt = time.Now().UTC()
	return nil
}

// Complete transitions the reservation to completed at journey end.
func (r *Reservation) Complete() error {
	if !r.status.CanTransitionTo(StatusCompleted) {
		return domain.NewInvalidStateError(string(r.status), string(StatusCompleted))
	}
	r.status = StatusCompleted
	r.updatedAt = time.Now().UTC()
	return nil
}

// Cancel cancels the reservation. A confirmed reservation can only be
// cancelled when its itinerary is refundable.
func (r *Reservation) Cancel(reason string) error {
	if !r.status.CanBeCancelled() {
		return domain.NewInvalidStateError(string(r.status), string(StatusCancelled))
	}
	if r.status == StatusConfirmed && !r.itinerary.IsRefundable {
		return domain.NewValidationError("confirmed reservation is not refundable")
	}
	now := time.Now().UTC()
	r.status = StatusCancelled
	r.cancelNote = reason
	r.cancelledAt = &now
	r.updatedAt = now
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (r *Reservation) IncrementVersion() {
	r.version++
	r.updatedAt = time.Now().UTC()
}
