package fixtures

import "github.com/homeservice/marketplace/internal/core/domain"

// SeedAccount is a mock directory user with a plaintext password; the
// directory hashes it at startup.
type SeedAccount struct {
	User     domain.User
	LoginID  string
	Password string
}

// Accounts are the users the mock login flow accepts.
func Accounts() []SeedAccount {
	return []SeedAccount{
		{User: domain.User{ID: 1001, Name: "Kim Minji", Role: domain.RoleCustomer}, LoginID: "minji", Password: "customer123"},
		{User: domain.User{ID: 1002, Name: "Park Jisoo", Role: domain.RoleCustomer}, LoginID: "jisoo", Password: "customer123"},
		{User: domain.User{ID: 2001, Name: "Lee Hyun", Role: domain.RoleManager}, LoginID: "hyun", Password: "manager123"},
		{User: domain.User{ID: 9001, Name: "Admin", Role: domain.RoleAdmin}, LoginID: "admin", Password: "admin123"},
	}
}

// Notifications are the alerts of the mock feed, keyed by user id.
func Notifications() map[int64][]domain.Notification {
	return map[int64][]domain.Notification{
		1001: {
			{ID: 1, Content: "Your aircon cleaning is confirmed.", RedirectURL: "/customer/reservations/CL-1718000000000-101", CreatedAt: at("2024-06-10T12:00:00+09:00")},
			{ID: 2, Content: "A manager will be assigned soon.", RedirectURL: "/customer/reservations/CL-1718086400000-57", CreatedAt: at("2024-06-11T09:20:00+09:00")},
		},
		2001: {
			{ID: 3, Content: "New booking request nearby.", RedirectURL: "/manager", CreatedAt: at("2024-06-11T09:14:00+09:00"), IsRead: true},
		},
	}
}
