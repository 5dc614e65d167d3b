package domain

import (
	"fmt"
	"time"
)

// Notification is an alert record as produced by the backend.
type Notification struct {
	ID          int64     `json:"id"`
	Content     string    `json:"content"`
	RedirectURL string    `json:"redirectUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	IsRead      bool      `json:"isRead"`
}

// Alert is the display shape of a Notification.
type Alert struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	Unread    bool      `json:"unread"`
	CreatedAt time.Time `json:"created_at"`
	Elapsed   string    `json:"elapsed"`
}

// ToAlert converts n into its display shape relative to now.
func ToAlert(n Notification, now time.Time) Alert {
	link := n.RedirectURL
	if link == "" {
		link = "/"
	}
	return Alert{
		ID:        n.ID,
		Message:   n.Content,
		Link:      link,
		Unread:    !n.IsRead,
		CreatedAt: n.CreatedAt,
		Elapsed:   elapsed(now.Sub(n.CreatedAt)),
	}
}

func elapsed(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}
