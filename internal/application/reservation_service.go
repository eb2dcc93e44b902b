package application

import (
	"context"
	"fmt"
	"time"

	"github.com/accessway-travel/service-planner/internal/domain"
	"github.com/accessway-travel/service-planner/internal/domain/plan"
	reservationDomain "github.com/accessway-travel/service-planner/internal/domain/reservation"
	"github.com/accessway-travel/service-planner/internal/events"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher publishes CloudEvent-wrapped payloads to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key, eventType string, data interface{}) error
}

// CreateReservationRequest holds the data needed to book an itinerary.
type CreateReservationRequest struct {
	TravelerID     uuid.UUID       `json:"traveler_id" binding:"required"`
	Itinerary      *plan.Itinerary `json:"itinerary" binding:"required"`
	AssistanceNote string          `json:"assistance_note"`
}

// ReservationDTO is the response representation of a reservation.
type ReservationDTO struct {
	ID                uuid.UUID      `json:"id"`
	ReservationNumber string         `json:"reservation_number"`
	TravelerID        uuid.UUID      `json:"traveler_id"`
	Status            string         `json:"status"`
	Itinerary         plan.Itinerary `json:"itinerary"`
	PriceEUR          float64        `json:"price_eur"`
	Currency          string         `json:"currency"`
	AssistanceNote    string         `json:"assistance_note,omitempty"`
	CancelNote        string         `json:"cancel_note,omitempty"`
	ConfirmedAt       *time.Time     `json:"confirmed_at,omitempty"`
	CancelledAt       *time.Time     `json:"cancelled_at,omitempty"`
	Version           int64          `json:"version"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// PagedReservations is a paginated list of reservations.
type PagedReservations struct {
	Items []ReservationDTO `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// ReservationService is the application service orchestrating reservation use
// cases.
type ReservationService struct {
	repo      reservationDomain.Repository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewReservationService creates a new ReservationService.
func NewReservationService(repo reservationDomain.Repository, publisher EventPublisher, logger *zap.Logger) *ReservationService {
	return &ReservationService{repo: repo, publisher: publisher, logger: logger}
}

// CreateReservation books an itinerary for a traveler.
func (s *ReservationService) CreateReservation(ctx context.Context, req CreateReservationRequest) (*ReservationDTO, error) {
	var itinerary plan.Itinerary
	if req.Itinerary != nil {
		itinerary = *req.Itinerary
	}

	res, err := reservationDomain.NewReservation(req.TravelerID, itinerary, req.AssistanceNote)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, res); err != nil {
		return nil, fmt.Errorf("failed to save reservation: %w", err)
	}

	s.publishRequested(ctx, res)

	dto := toReservationDTO(res)
	return &dto, nil
}

// GetReservation retrieves one reservation by ID.
func (s *ReservationService) GetReservation(ctx context.Context, id uuid.UUID) (*ReservationDTO, error) {
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toReservationDTO(res)
	return &dto, nil
}

// GetTravelerReservations lists a traveler's reservations with pagination.
func (s *ReservationService) GetTravelerReservations(ctx context.Context, travelerID uuid.UUID, page, limit int) (*PagedReservations, error) {
	reservations, total, err := s.repo.FindByTravelerID(ctx, travelerID, page, limit)
	if err != nil {
		return nil, err
	}

	items := make([]ReservationDTO, len(reservations))
	for i, r := range reservations {
		items[i] = toReservationDTO(r)
	}
	return &PagedReservations{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// CancelReservation cancels a traveler's reservation.
func (s *ReservationService) CancelReservation(ctx context.Context, id, travelerID uuid.UUID, reason string) (*ReservationDTO, error) {
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Don't leak other travelers' reservations.
	if res.TravelerID() != travelerID {
		return nil, domain.NewNotFoundError("Reservation", id.String())
	}

	if err := res.Cancel(reason); err != nil {
		return nil, err
	}
	res.IncrementVersion()

	if err := s.repo.Update(ctx, res); err != nil {
		return nil, err
	}

	s.publishCancelled(ctx, res, reason)

	dto := toReservationDTO(res)
	return &dto, nil
}

// ConfirmReservation applies a carrier confirmation to a reservation.
func (s *ReservationService) ConfirmReservation(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, func(r *reservationDomain.Reservation) error { return r.Confirm() })
}

// CompleteReservation marks a reservation completed at journey end.
func (s *ReservationService) CompleteReservation(ctx context.Context, id uuid.UUID) error {
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	// Carriers may report completion without an intermediate in_progress
	// update; walk through it.
	if res.Status() == reservationDomain.StatusConfirmed {
		if err := res.Start(); err != nil {
			return err
		}
	}
	if err := res.Complete(); err != nil {
		return err
	}
	res.IncrementVersion()
	return s.repo.Update(ctx, res)
}

func (s *ReservationService) transition(ctx context.Context, id uuid.UUID, apply func(*reservationDomain.Reservation) error) error {
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := apply(res); err != nil {
		return err
	}
	res.IncrementVersion()
	return s.repo.Update(ctx, res)
}

func (s *ReservationService) publishRequested(ctx context.Context, res *reservationDomain.Reservation) {
	if s.publisher == nil {
		return
	}
	evt := events.ReservationRequestedEvent{
		ReservationID:     res.ID(),
		ReservationNumber: res.Number(),
		TravelerID:        res.TravelerID(),
		PriceEUR:          res.PriceEUR(),
		LegCount:          len(res.Itinerary().Legs),
		IsRefundable:      res.Itinerary().IsRefundable,
		OccurredAt:        time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, events.TopicReservationEvents, res.ID().String(), events.ReservationRequested, evt); err != nil {
		s.logger.Error("failed to publish reservation requested event",
			zap.String("reservation_id", res.ID().String()),
			zap.Error(err),
		)
	}
}

func (s *ReservationService) publishCancelled(ctx context.Context, res *reservationDomain.Reservation, reason string) {
	if s.publisher == nil {
		return
	}
	evt := events.ReservationCancelledEvent{
		ReservationID: res.ID(),
		TravelerID:    res.TravelerID(),
		Reason:        reason,
		OccurredAt:    time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, events.TopicReservationEvents, res.ID().String(), events.ReservationCancelled, evt); err != nil {
		s.logger.Error("failed to publish reservation cancelled event",
			zap.String("reservation_id", res.ID().String()),
			zap.Error(err),
		)
	}
}

func toReservationDTO(res *reservationDomain.Reservation) ReservationDTO {
	return ReservationDTO{
		ID:                res.ID(),
		ReservationNumber: res.Number(),
		TravelerID:        res.TravelerID(),
		Status:            res.Status().String(),
		Itinerary:         res.Itinerary(),
		PriceEUR:          res.PriceEUR(),
		Currency:          res.Currency(),
		AssistanceNote:    res.AssistanceNote(),
		CancelNote:        res.CancelNote(),
		ConfirmedAt:       res.ConfirmedAt(),
		CancelledAt:       res.CancelledAt(),
		Version:           res.Version(),
		CreatedAt:         res.CreatedAt(),
		UpdatedAt:         res.UpdatedAt(),
	}
}
