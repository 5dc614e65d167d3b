package ports

import (
	"context"

	"github.com/homeservice/marketplace/internal/core/domain"
)

// ReservationRepository defines persistence operations for reservations.
// Every returned value is a copy; callers never alias stored records.
type ReservationRepository interface {
	List(ctx context.Context) ([]domain.Reservation, error)
	// FindByID returns domain.ErrReservationNotFound for unknown ids.
	FindByID(ctx context.Context, id string) (*domain.Reservation, error)
	// Update merges patch into the stored record and returns the result.
	Update(ctx context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error)
	Create(ctx context.Context, r domain.Reservation) error
	// Reset restores the seed data, discarding every mutation.
	Reset(ctx context.Context) error
}
