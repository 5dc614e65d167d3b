package handler

import (
	"time"

	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/core/ports"
)

type patchReservationRequest struct {
	ManagerID   *int64                    `json:"manager_id"   validate:"omitempty,gte=1"`
	ServiceName *string                   `json:"service_name" validate:"omitempty,min=1,max=100"`
	Category    *string                   `json:"category"     validate:"omitempty,max=50"`
	Address     *string                   `json:"address"      validate:"omitempty,min=1,max=200"`
	ScheduledAt *time.Time                `json:"scheduled_at"`
	Status      *domain.ReservationStatus `json:"status"       validate:"omitempty,reservation_status"`
	Price       *int64                    `json:"price"        validate:"omitempty,gte=0"`
	Memo        *string                   `json:"memo"         validate:"omitempty,max=500"`
}

type createReservationRequest struct {
	ServiceName string    `json:"service_name" validate:"required,max=100"`
	Category    string    `json:"category"     validate:"max=50"`
	Address     string    `json:"address"      validate:"required,max=200"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Price       int64     `json:"price"        validate:"gte=0"`
	Memo        string    `json:"memo"         validate:"max=500"`
}

type reservationListResponse struct {
	Items []domain.Reservation `json:"items"`
	Count int                  `json:"count"`
}

func toPatch(req patchReservationRequest) domain.ReservationPatch {
	return domain.ReservationPatch{
		ManagerID:   req.ManagerID,
		ServiceName: req.ServiceName,
		Category:    req.Category,
		Address:     req.Address,
		ScheduledAt: req.ScheduledAt,
		Status:      req.Status,
		Price:       req.Price,
		Memo:        req.Memo,
	}
}

func toCreateInput(req createReservationRequest) ports.CreateReservationInput {
	return ports.CreateReservationInput{
		ServiceName: req.ServiceName,
		Category:    req.Category,
		Address:     req.Address,
		ScheduledAt: req.ScheduledAt,
		Price:       req.Price,
		Memo:        req.Memo,
	}
}
