package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/homeservice/marketplace/internal/core/ports"
)

// ErrUnresolved means a token is present but its identity could not be
// established yet. Guards treat it as "still loading".
var ErrUnresolved = errors.New("session unresolved")

// TokenReader is the part of the token store the resolver needs.
type TokenReader interface {
	Get(ctx context.Context) (string, bool)
}

// Resolver reconciles a rehydrated session with the stored credential.
type Resolver struct {
	backend ports.AuthBackend
	log     zerolog.Logger
}

// NewResolver returns a Resolver. A nil backend disables profile lookups.
func NewResolver(backend ports.AuthBackend, log zerolog.Logger) *Resolver {
	return &Resolver{backend: backend, log: log}
}

// Resolve logs the visitor in from the confirmed profile when a token
// exists without a session, and keeps the session's token copy current.
// A token the backend rejects leaves the session logged out.
func (r *Resolver) Resolve(ctx context.Context, store *Store, tokens TokenReader) error {
	tok, ok := tokens.Get(ctx)
	if !ok {
		return nil
	}

	snap := store.Snapshot()
	if snap.IsLoggedIn {
		if snap.Token != tok {
			return store.SetToken(ctx, tok)
		}
		return nil
	}

	if r.backend == nil {
		return nil
	}
	user, err := r.backend.ConfirmCustomer(ctx, tok)
	if err != nil {
		r.log.Warn().Err(err).Msg("profile confirmation failed")
		return fmt.Errorf("%w: %v", ErrUnresolved, err)
	}
	if user == nil {
		r.log.Debug().Msg("stored token rejected by backend")
		return nil
	}
	return store.Login(ctx, *user, tok)
}
