package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/core/token"
)

// NotificationFeed serves alerts from fixtures, keyed by the token subject.
type NotificationFeed struct {
	mu     sync.Mutex
	byUser map[int64][]domain.Notification
}

func NewNotificationFeed(seed map[int64][]domain.Notification) *NotificationFeed {
	f := &NotificationFeed{byUser: make(map[int64][]domain.Notification, len(seed))}
	for id, list := range seed {
		f.byUser[id] = append([]domain.Notification(nil), list...)
	}
	return f
}

func (f *NotificationFeed) subject(raw string) (int64, error) {
	res := token.Decode(raw, time.Now())
	if !res.OK() {
		return 0, domain.ErrUnauthenticated
	}
	return res.Claims.Subject, nil
}

// List returns the caller's alerts, newest first.
func (f *NotificationFeed) List(_ context.Context, raw string) ([]domain.Notification, error) {
	id, err := f.subject(raw)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	out := append([]domain.Notification(nil), f.byUser[id]...)
	f.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *NotificationFeed) MarkAllRead(_ context.Context, raw string) error {
	id, err := f.subject(raw)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.byUser[id] {
		f.byUser[id][i].IsRead = true
	}
	return nil
}
