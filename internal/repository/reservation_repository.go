package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/accessway-travel/service-planner/internal/domain"
	"github.com/accessway-travel/service-planner/internal/domain/plan"
	reservationDomain "github.com/accessway-travel/service-planner/internal/domain/reservation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationModel is the GORM model for the reservations table.
type ReservationModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ReservationNumber string          `gorm:"uniqueIndex;not null;size:20"`
	TravelerID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	Status            string          `gorm:"not null;size:30;index"`
	Itinerary         json.RawMessage `gorm:"type:jsonb;not null"`
	PriceEUR          float64         `gorm:"not null"`
	Currency          string          `gorm:"not null;size:3;default:'EUR'"`
	AssistanceNote    string          `gorm:"size:1000"`
	CancelNote        string          `gorm:"size:500"`
	ConfirmedAt       *time.Time      `gorm:""`
	CancelledAt       *time.Time      `gorm:""`
	Version           int64           `gorm:"not null;default:1"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ReservationModel) TableName() string {
	return "reservations"
}

// GormReservationRepository is the GORM-based implementation of the
// reservation Repository.
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GormReservationRepository.
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// Save persists a new reservation.
func (r *GormReservationRepository) Save(ctx context.Context, res *reservationDomain.Reservation) error {
	model, err := toReservationModel(res)
	if err != nil {
		return fmt.Errorf("failed to convert reservation to model: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save reservation: %w", err)
	}
	return nil
}

// Update persists changes to an existing reservation with optimistic locking.
func (r *GormReservationRepository) Update(ctx context.Context, res *reservationDomain.Reservation) error {
	model, err := toReservationModel(res)
	if err != nil {
		return fmt.Errorf("failed to convert reservation to model: %w", err)
	}

	expectedVersion := res.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&ReservationModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"cancel_note":  model.CancelNote,
			"confirmed_at": model.ConfirmedAt,
			"cancelled_at": model.CancelledAt,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("reservation was modified by another transaction")
	}
	return nil
}

// FindByID retrieves a reservation by its unique identifier.
func (r *GormReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservationDomain.Reservation, error) {
	var model ReservationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Reservation", id.String())
		}
		return nil, fmt.Errorf("failed to find reservation by ID: %w", err)
	}
	return toDomainReservation(&model)
}

// FindByNumber retrieves a reservation by its reservation number.
func (r *GormReservationRepository) FindByNumber(ctx context.Context, number string) (*reservationDomain.Reservation, error) {
	var model ReservationModel
	if err := r.db.WithContext(ctx).Where("reservation_number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Reservation", number)
		}
		return nil, fmt.Errorf("failed to find reservation by number: %w", err)
	}
	return toDomainReservation(&model)
}

// FindByTravelerID retrieves reservations for a traveler with pagination.
func (r *GormReservationRepository) FindByTravelerID(ctx context.Context, travelerID uuid.UUID, page, limit int) ([]*reservationDomain.Reservation, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ReservationModel{}).Where("traveler_id = ?", travelerID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count traveler reservations: %w", err)
	}

	var models []ReservationModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("traveler_id = ?", travelerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find traveler reservations: %w", err)
	}

	reservations := make([]*reservationDomain.Reservation, len(models))
	for i, m := range models {
		res, err := toDomainReservation(&m)
		if err != nil {
			return nil, 0, err
		}
		reservations[i] = res
	}
	return reservations, total, nil
}

// --- Conversion helpers ---

func toReservationModel(res *reservationDomain.Reservation) (*ReservationModel, error) {
	itineraryJSON, err := json.Marshal(res.Itinerary())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal itinerary: %w", err)
	}

	return &ReservationModel{
		ID:                res.ID(),
		ReservationNumber: res.Number(),
		TravelerID:        res.TravelerID(),
		Status:            res.Status().String(),
		Itinerary:         itineraryJSON,
		PriceEUR:          res.PriceEUR(),
		Currency:          res.Currency(),
		AssistanceNote:    res.AssistanceNote(),
		CancelNote:        res.CancelNote(),
		ConfirmedAt:       res.ConfirmedAt(),
		CancelledAt:       res.CancelledAt(),
		Version:           res.Version(),
		CreatedAt:         res.CreatedAt(),
		UpdatedAt:         res.UpdatedAt(),
	}, nil
}

func toDomainReservation(m *ReservationModel) (*reservationDomain.Reservation, error) {
	status, err := reservationDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}

	var itinerary plan.Itinerary
	if err := json.Unmarshal(m.Itinerary, &itinerary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal itinerary: %w", err)
	}

	return reservationDomain.Reconstruct(
		m.ID,
		m.ReservationNumber,
		m.TravelerID,
		status,
		itinerary,
		m.PriceEUR,
		m.Currency,
		m.AssistanceNote,
		m.CancelNote,
		m.ConfirmedAt,
		m.CancelledAt,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
