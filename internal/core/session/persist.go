package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/core/ports"
)

// StorageKey is the storage key the serialized session lives under.
const StorageKey = "auth-session"

// NewPersister returns the listener that mirrors every transition into
// storage. Write failures are logged; the in-memory state stays
// authoritative for the rest of the request.
func NewPersister(storage ports.Storage, key string, log zerolog.Logger) Listener {
	return func(ctx context.Context, ev Event) {
		if storage == nil {
			return
		}
		if err := write(ctx, storage, key, ev.Next); err != nil {
			log.Error().Err(err).Str("event", string(ev.Kind)).Msg("session persist failed")
		}
	}
}

func write(ctx context.Context, storage ports.Storage, key string, s domain.Session) error {
	if s.IsInitial() {
		return storage.Delete(ctx, key)
	}
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return storage.Set(ctx, key, string(b), 0)
}

// Rehydrate loads the persisted session. A missing record gives the initial
// state, and so does a record that no longer decodes or breaks the login
// invariant. Only storage failures are returned.
func Rehydrate(ctx context.Context, storage ports.Storage, key string, log zerolog.Logger) (domain.Session, error) {
	if storage == nil {
		return domain.Session{}, nil
	}
	raw, ok, err := storage.Get(ctx, key)
	if err != nil {
		return domain.Session{}, fmt.Errorf("rehydrate session: %w", err)
	}
	if !ok {
		return domain.Session{}, nil
	}

	var s domain.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		log.Warn().Err(err).Msg("discarding unreadable session record")
		return domain.Session{}, nil
	}
	if !s.Valid() {
		log.Warn().Msg("discarding inconsistent session record")
		return domain.Session{}, nil
	}
	return s, nil
}
