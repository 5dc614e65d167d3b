package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/core/ports"
)

// MarkReadQueue accepts fire-and-forget jobs. Enqueue reports false when
// the job was dropped.
type MarkReadQueue interface {
	Enqueue(job ports.MarkReadJob) bool
}

type notificationService struct {
	backend ports.NotificationBackend
	queue   MarkReadQueue
	log     zerolog.Logger
	now     func() time.Time
}

// NewNotificationService returns a NotificationService. With a nil queue,
// MarkAllRead calls the backend inline.
func NewNotificationService(backend ports.NotificationBackend, queue MarkReadQueue, log zerolog.Logger) ports.NotificationService {
	return &notificationService{backend: backend, queue: queue, log: log, now: time.Now}
}

// Alerts never fails: a missing credential or a backend error yields an
// empty list.
func (s *notificationService) Alerts(ctx context.Context, token string) []domain.Alert {
	if token == "" {
		return []domain.Alert{}
	}

	list, err := s.backend.List(ctx, token)
	if err != nil {
		s.log.Warn().Err(err).Msg("notification fetch failed")
		return []domain.Alert{}
	}

	now := s.now()
	out := make([]domain.Alert, 0, len(list))
	for _, n := range list {
		out = append(out, domain.ToAlert(n, now))
	}
	return out
}

func (s *notificationService) MarkAllRead(ctx context.Context, job ports.MarkReadJob) {
	if job.Token == "" {
		return
	}
	if s.queue == nil {
		if err := s.backend.MarkAllRead(ctx, job.Token); err != nil {
			s.log.Warn().Err(err).Str("client_id", job.ClientID).Msg("mark all read failed")
		}
		return
	}
	if !s.queue.Enqueue(job) {
		s.log.Warn().Str("client_id", job.ClientID).Msg("mark all read dropped, queue full")
	}
}
