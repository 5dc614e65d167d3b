package guard

import (
	"context"

	"github.com/rs/zerolog"
)

// LoginRoute is where unauthenticated and tampered visitors are sent.
const LoginRoute = "/login"

// Navigator performs the client-visible side effects of a guard.
type Navigator interface {
	Redirect(path string)
	Alert(message string)
}

type SessionClearer interface {
	Logout(ctx context.Context) error
}

type TokenRemover interface {
	Remove(ctx context.Context) error
}

// TamperHandler forcibly logs a visitor out after a mismatch. It acts at
// most once per incident no matter how many guards report it.
type TamperHandler struct {
	shot    OneShot
	session SessionClearer
	tokens  TokenRemover
	nav     Navigator
	log     zerolog.Logger
}

func NewTamperHandler(session SessionClearer, tokens TokenRemover, nav Navigator, log zerolog.Logger) *TamperHandler {
	return &TamperHandler{session: session, tokens: tokens, nav: nav, log: log}
}

// Handle clears the session and the credential and redirects to the login
// route. It reports whether this call did the work. Nothing is shown to the
// visitor beyond the redirect.
func (h *TamperHandler) Handle(ctx context.Context, v Validation) bool {
	if !h.shot.Trigger() {
		return false
	}
	defer h.shot.Resolve()

	h.log.Warn().Err(v.Err).Str("reason", string(v.Reason)).Msg("session tampering detected, forcing logout")

	if err := h.session.Logout(ctx); err != nil {
		h.log.Error().Err(err).Msg("clear session after tampering")
	}
	if err := h.tokens.Remove(ctx); err != nil {
		h.log.Error().Err(err).Msg("remove token after tampering")
	}
	h.nav.Redirect(LoginRoute)
	return true
}

// State exposes the incident state, mostly for diagnostics.
func (h *TamperHandler) State() ShotState {
	return h.shot.State()
}
