package memory

import (
	"context"
	"sync"

	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/core/ports"
)

// ReservationStore is the mock reservation table. Reservation holds only
// value fields, so copying a struct is a deep copy; nothing handed out can
// reach the backing slice.
type ReservationStore struct {
	mu   sync.RWMutex
	seed []domain.Reservation
	rows []domain.Reservation
}

// NewReservationStore clones seed so later mutations never touch it.
func NewReservationStore(seed []domain.Reservation) *ReservationStore {
	s := &ReservationStore{seed: clone(seed)}
	s.rows = clone(s.seed)
	return s
}

func clone(in []domain.Reservation) []domain.Reservation {
	out := make([]domain.Reservation, len(in))
	copy(out, in)
	return out
}

// List returns every reservation in insertion order.
func (s *ReservationStore) List() []domain.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.rows)
}

func (s *ReservationStore) GetByID(id string) (domain.Reservation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.rows[i], true
	}
	return domain.Reservation{}, false
}

// Update merges patch into the record with id and returns the merged copy.
// Unknown ids leave the store untouched.
func (s *ReservationStore) Update(id string, patch domain.ReservationPatch) (domain.Reservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Reservation{}, false
	}
	s.rows[i] = s.rows[i].Apply(patch)
	return s.rows[i], true
}

// Insert appends r unless its id is already taken.
func (s *ReservationStore) Insert(r domain.Reservation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(r.ID) >= 0 {
		return false
	}
	s.rows = append(s.rows, r)
	return true
}

// Reset discards every mutation and restores a fresh copy of the seed.
func (s *ReservationStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = clone(s.seed)
}

func (s *ReservationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

func (s *ReservationStore) indexOf(id string) int {
	for i := range s.rows {
		if s.rows[i].ID == id {
			return i
		}
	}
	return -1
}

// ReservationRepository adapts a ReservationStore to ports.ReservationRepository.
type ReservationRepository struct {
	store *ReservationStore
}

func NewReservationRepository(store *ReservationStore) ports.ReservationRepository {
	return &ReservationRepository{store: store}
}

func (r *ReservationRepository) List(_ context.Context) ([]domain.Reservation, error) {
	return r.store.List(), nil
}

func (r *ReservationRepository) FindByID(_ context.Context, id string) (*domain.Reservation, error) {
	res, ok := r.store.GetByID(id)
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	return &res, nil
}

func (r *ReservationRepository) Update(_ context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error) {
	res, ok := r.store.Update(id, patch)
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	return &res, nil
}

func (r *ReservationRepository) Create(_ context.Context, res domain.Reservation) error {
	if !r.store.Insert(res) {
		return domain.ErrDuplicateReservation
	}
	return nil
}

func (r *ReservationRepository) Reset(_ context.Context) error {
	r.store.Reset()
	return nil
}
