package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/core/ports"
)

type ReservationService struct {
	repo   ports.ReservationRepository
	logger zerolog.Logger
	now    func() time.Time
	seq    atomic.Int64
}

func NewReservationService(repo ports.ReservationRepository, logger zerolog.Logger) *ReservationService {
	return &ReservationService{repo: repo, logger: logger, now: time.Now}
}

// List returns the reservations visible to viewer. Customers see their own
// bookings only; managers and admins see everything.
func (s *ReservationService) List(ctx context.Context, viewer ports.Viewer) ([]domain.Reservation, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	if viewer.Role != domain.RoleCustomer {
		return all, nil
	}

	out := make([]domain.Reservation, 0, len(all))
	for _, r := range all {
		if r.CustomerID == viewer.UserID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Get returns ErrReservationNotFound for reservations the viewer may not
// see, so a customer cannot probe for other customers' ids.
func (s *ReservationService) Get(ctx context.Context, viewer ports.Viewer, id string) (*domain.Reservation, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visible(viewer, r) {
		return nil, domain.ErrReservationNotFound
	}
	return r, nil
}

func (s *ReservationService) Update(ctx context.Context, viewer ports.Viewer, id string, patch domain.ReservationPatch) (*domain.Reservation, error) {
	if patch.Empty() {
		return nil, domain.ErrInvalidReservation
	}
	if patch.Status != nil && !patch.Status.Known() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidReservation, *patch.Status)
	}

	current, err := s.Get(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if err := authorizePatch(viewer, *current, patch); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("reservation_id", id).Msg("failed to update reservation")
		return nil, err
	}

	ev := s.logger.Info().Str("reservation_id", id).Int64("user_id", viewer.UserID)
	if patch.Status != nil {
		ev = ev.Str("status", string(*patch.Status))
	}
	ev.Msg("reservation updated")
	return updated, nil
}

// Create books a new pending reservation on behalf of viewer.
func (s *ReservationService) Create(ctx context.Context, viewer ports.Viewer, in ports.CreateReservationInput) (*domain.Reservation, error) {
	if viewer.Role != domain.RoleCustomer {
		return nil, domain.ErrForbidden
	}
	if in.ServiceName == "" || in.Address == "" || in.ScheduledAt.IsZero() || in.Price < 0 {
		return nil, domain.ErrInvalidReservation
	}

	now := s.now().UTC()
	r := domain.Reservation{
		ID:          domain.NewReservationID(now, int(s.seq.Add(1))),
		CustomerID:  viewer.UserID,
		ServiceName: in.ServiceName,
		Category:    in.Category,
		Address:     in.Address,
		ScheduledAt: in.ScheduledAt.UTC(),
		Status:      domain.ReservationPending,
		Price:       in.Price,
		Memo:        in.Memo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		s.logger.Error().Err(err).Str("reservation_id", r.ID).Msg("failed to create reservation")
		return nil, err
	}

	s.logger.Info().Str("reservation_id", r.ID).Int64("customer_id", viewer.UserID).Msg("reservation created")
	return &r, nil
}

func (s *ReservationService) Reset(ctx context.Context) error {
	if err := s.repo.Reset(ctx); err != nil {
		return fmt.Errorf("reset reservations: %w", err)
	}
	s.logger.Warn().Msg("reservations reset to seed data")
	return nil
}

func visible(viewer ports.Viewer, r *domain.Reservation) bool {
	switch viewer.Role {
	case domain.RoleAdmin, domain.RoleManager:
		return true
	case domain.RoleCustomer:
		return r.CustomerID == viewer.UserID
	}
	return false
}

// authorizePatch limits what each role may change. Customers can edit the
// booking details and cancel; managers can move the status and take the
// job; admins are unrestricted.
func authorizePatch(viewer ports.Viewer, current domain.Reservation, p domain.ReservationPatch) error {
	switch viewer.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleManager:
		if p.ServiceName != nil || p.Category != nil || p.Price != nil {
			return domain.ErrForbidden
		}
		if p.ManagerID != nil && *p.ManagerID != viewer.UserID {
			return domain.ErrForbidden
		}
		return nil
	case domain.RoleCustomer:
		if p.ManagerID != nil || p.Price != nil || p.ServiceName != nil || p.Category != nil {
			return domain.ErrForbidden
		}
		if p.Status != nil && *p.Status != domain.ReservationCancelled {
			return domain.ErrForbidden
		}
		if current.Status == domain.ReservationCompleted || current.Status == domain.ReservationCancelled {
			return domain.ErrForbidden
		}
		return nil
	}
	return domain.ErrForbidden
}
