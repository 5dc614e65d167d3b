package domain

import (
	"errors"
	"fmt"
	"time"
)

// ReservationStatus represents the lifecycle state of a service booking.
type ReservationStatus string

const (
	ReservationPending    ReservationStatus = "pending"
	ReservationConfirmed  ReservationStatus = "confirmed"
	ReservationInProgress ReservationStatus = "in_progress"
	ReservationCompleted  ReservationStatus = "completed"
	ReservationCancelled  ReservationStatus = "cancelled"
)

var (
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrDuplicateReservation = errors.New("reservation already exists")
	ErrInvalidReservation   = errors.New("invalid reservation data")
)

// Known reports whether s is one of the defined statuses.
func (s ReservationStatus) Known() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationInProgress, ReservationCompleted, ReservationCancelled:
		return true
	}
	return false
}

// Reservation is a booked home service. ID is opaque to every consumer.
type Reservation struct {
	ID          string            `json:"id"           bson:"_id"`
	CustomerID  int64             `json:"customer_id"  bson:"customer_id"`
	ManagerID   int64             `json:"manager_id"   bson:"manager_id"`
	ServiceName string            `json:"service_name" bson:"service_name"`
	Category    string            `json:"category"     bson:"category"`
	Address     string            `json:"address"      bson:"address"`
	ScheduledAt time.Time         `json:"scheduled_at" bson:"scheduled_at"`
	Status      ReservationStatus `json:"status"       bson:"status"`
	Price       int64             `json:"price"        bson:"price"`
	Memo        string            `json:"memo"         bson:"memo"`
	CreatedAt   time.Time         `json:"created_at"   bson:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"   bson:"updated_at"`
}

// ReservationPatch carries a partial update. Nil fields are left untouched.
type ReservationPatch struct {
	ManagerID   *int64             `json:"manager_id,omitempty"`
	ServiceName *string            `json:"service_name,omitempty"`
	Category    *string            `json:"category,omitempty"`
	Address     *string            `json:"address,omitempty"`
	ScheduledAt *time.Time         `json:"scheduled_at,omitempty"`
	Status      *ReservationStatus `json:"status,omitempty"`
	Price       *int64             `json:"price,omitempty"`
	Memo        *string            `json:"memo,omitempty"`
}

// Empty reports whether the patch would change nothing.
func (p ReservationPatch) Empty() bool {
	return p.ManagerID == nil && p.ServiceName == nil && p.Category == nil &&
		p.Address == nil && p.ScheduledAt == nil && p.Status == nil &&
		p.Price == nil && p.Memo == nil
}

// Apply merges p into a copy of r. The merge is shallow: every set field
// replaces the top-level field wholesale.
func (r Reservation) Apply(p ReservationPatch) Reservation {
	if p.ManagerID != nil {
		r.ManagerID = *p.ManagerID
	}
	if p.ServiceName != nil {
		r.ServiceName = *p.ServiceName
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Address != nil {
		r.Address = *p.Address
	}
	if p.ScheduledAt != nil {
		r.ScheduledAt = *p.ScheduledAt
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Price != nil {
		r.Price = *p.Price
	}
	if p.Memo != nil {
		r.Memo = *p.Memo
	}
	return r
}

// NewReservationID formats an identifier as CL-<unix-millis>-<n>, n in 0..999.
func NewReservationID(at time.Time, n int) string {
	return fmt.Sprintf("CL-%d-%d", at.UnixMilli(), ((n%1000)+1000)%1000)
}
