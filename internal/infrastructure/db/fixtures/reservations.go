// Package fixtures holds the seed data the mock backend starts from.
package fixtures

import (
	"time"

	"github.com/homeservice/marketplace/internal/core/domain"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Reservations returns a fresh copy of the reservation seed on every call.
func Reservations() []domain.Reservation {
	return []domain.Reservation{
		{
			ID:          "CL-1718000000000-101",
			CustomerID:  1001,
			ManagerID:   2001,
			ServiceName: "Aircon deep cleaning",
			Category:    "cleaning",
			Address:     "12 Teheran-ro, Gangnam-gu, Seoul",
			ScheduledAt: at("2024-06-15T10:00:00+09:00"),
			Status:      domain.ReservationConfirmed,
			Price:       120000,
			Memo:        "Two wall units",
			CreatedAt:   at("2024-06-10T09:13:20+09:00"),
			UpdatedAt:   at("2024-06-10T12:00:00+09:00"),
		},
		{
			ID:          "CL-1718086400000-57",
			CustomerID:  1001,
			ServiceName: "Move-out cleaning",
			Category:    "cleaning",
			Address:     "12 Teheran-ro, Gangnam-gu, Seoul",
			ScheduledAt: at("2024-06-20T09:00:00+09:00"),
			Status:      domain.ReservationPending,
			Price:       350000,
			CreatedAt:   at("2024-06-11T09:13:20+09:00"),
			UpdatedAt:   at("2024-06-11T09:13:20+09:00"),
		},
		{
			ID:          "CL-1718172800000-999",
			CustomerID:  1002,
			ManagerID:   2001,
			ServiceName: "Washing machine cleaning",
			Category:    "appliance",
			Address:     "88 Banpo-daero, Seocho-gu, Seoul",
			ScheduledAt: at("2024-06-18T14:00:00+09:00"),
			Status:      domain.ReservationCompleted,
			Price:       90000,
			Memo:        "Front loader",
			CreatedAt:   at("2024-06-12T09:13:20+09:00"),
			UpdatedAt:   at("2024-06-18T16:30:00+09:00"),
		},
		{
			ID:          "CL-1718259200000-0",
			CustomerID:  1003,
			ServiceName: "Sofa fabric care",
			Category:    "cleaning",
			Address:     "5 Haeundae-ro, Haeundae-gu, Busan",
			ScheduledAt: at("2024-06-25T13:00:00+09:00"),
			Status:      domain.ReservationCancelled,
			Price:       80000,
			Memo:        "Customer rescheduled",
			CreatedAt:   at("2024-06-13T09:13:20+09:00"),
			UpdatedAt:   at("2024-06-14T08:00:00+09:00"),
		},
	}
}
