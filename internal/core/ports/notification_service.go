package ports

import (
	"context"

	"github.com/homeservice/marketplace/internal/core/domain"
)

// NotificationBackend is where alerts are produced.
type NotificationBackend interface {
	List(ctx context.Context, token string) ([]domain.Notification, error)
	MarkAllRead(ctx context.Context, token string) error
}

// MarkReadJob asks for every alert of a visitor to be flagged as read.
type MarkReadJob struct {
	ClientID string
	Token    string
}

// NotificationService exposes alerts in display shape. Failures are soft:
// Alerts returns an empty list and MarkAllRead never reports an error.
type NotificationService interface {
	Alerts(ctx context.Context, token string) []domain.Alert
	MarkAllRead(ctx context.Context, job MarkReadJob)
}
