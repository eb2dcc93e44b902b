package reservation

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for the reservation aggregate.
type Repository interface {
	// Save persists a new reservation.
	Save(ctx context.Context, r *Reservation) error

	// Update persists changes to an existing reservation with optimistic locking.
	Update(ctx context.Context, r *Reservation) error

	// FindByID retrieves a reservation by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)

	// FindByNumber retrieves a reservation by its reservation number.
	FindByNumber(ctx context.Context, number string) (*Reservation, error)

	// FindByTravelerID retrieves reservations for a traveler with pagination.
	FindByTravelerID(ctx context.Context, travelerID uuid.UUID, page, limit int) ([]*Reservation, int64, error)
}
