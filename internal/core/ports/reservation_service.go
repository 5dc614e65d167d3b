package ports

import (
	"context"
	"time"

	"github.com/homeservice/marketplace/internal/core/domain"
)

// Viewer is the authenticated caller of a reservation operation.
type Viewer struct {
	UserID int64
	Role   domain.Role
}

// CreateReservationInput carries the data needed to book a service.
type CreateReservationInput struct {
	ServiceName string
	Category    string
	Address     string
	ScheduledAt time.Time
	Price       int64
	Memo        string
}

// ReservationService defines use-case operations for reservations.
// Customers only ever see their own bookings.
type ReservationService interface {
	List(ctx context.Context, viewer Viewer) ([]domain.Reservation, error)
	Get(ctx context.Context, viewer Viewer, id string) (*domain.Reservation, error)
	Update(ctx context.Context, viewer Viewer, id string, patch domain.ReservationPatch) (*domain.Reservation, error)
	Create(ctx context.Context, viewer Viewer, input CreateReservationInput) (*domain.Reservation, error)
	Reset(ctx context.Context) error
}
