package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/core/token"
)

// Reason explains a Validation outcome.
type Reason string

const (
	ReasonConsistent Reason = "consistent"
	ReasonNoToken    Reason = "no_token"
	ReasonMalformed  Reason = "malformed_token"
	ReasonExpired    Reason = "expired_token"
	ReasonNoSession  Reason = "no_session"
	ReasonMismatch   Reason = "mismatch"
)

// Validation is the result of comparing a credential with the session.
// Only ReasonMismatch is invalid; every other reason is a soft outcome that
// the API layer or the route guard deals with.
type Validation struct {
	Valid  bool
	Err    error
	Reason Reason
}

type SessionReader interface {
	Snapshot() domain.Session
}

type TokenReader interface {
	Get(ctx context.Context) (string, bool)
}

// Validator detects sessions whose cached identity was edited: it decodes
// the stored credential itself instead of trusting the session's copy.
type Validator struct {
	session SessionReader
	tokens  TokenReader
	now     func() time.Time
}

func NewValidator(session SessionReader, tokens TokenReader) *Validator {
	return &Validator{session: session, tokens: tokens, now: time.Now}
}

func (v *Validator) Validate(ctx context.Context) Validation {
	raw, ok := v.tokens.Get(ctx)
	if !ok {
		return Validation{Valid: true, Reason: ReasonNoToken}
	}

	res := token.Decode(raw, v.now())
	switch res.Reason {
	case token.ReasonAbsent:
		return Validation{Valid: true, Reason: ReasonNoToken}
	case token.ReasonMalformed:
		return Validation{Valid: true, Reason: ReasonMalformed, Err: res.Err}
	case token.ReasonExpired:
		return Validation{Valid: true, Reason: ReasonExpired}
	}

	snap := v.session.Snapshot()
	if !snap.IsLoggedIn || snap.User == nil {
		return Validation{Valid: true, Reason: ReasonNoSession}
	}

	if res.Claims.Role != snap.User.Role || res.Claims.Subject != snap.User.ID {
		return Validation{
			Valid:  false,
			Reason: ReasonMismatch,
			Err: fmt.Errorf("%w: token (%d, %s) vs session (%d, %s)", domain.ErrClaimsMismatch,
				res.Claims.Subject, res.Claims.Role, snap.User.ID, snap.User.Role),
		}
	}
	return Validation{Valid: true, Reason: ReasonConsistent}
}
