package guard

import (
	"context"
	"sync"

	"github.com/homeservice/marketplace/internal/core/domain"
)

// Decision is the state of a RouteGuard.
//
//	Loading → Authorized
//	Loading → Redirecting
//
// Authorized and Redirecting are terminal for the guard's lifetime.
type Decision int

const (
	Loading Decision = iota
	Authorized
	Redirecting
)

func (d Decision) String() string {
	switch d {
	case Loading:
		return "loading"
	case Authorized:
		return "authorized"
	case Redirecting:
		return "redirecting"
	}
	return "unknown"
}

const (
	AlertLoginRequired = "Please log in to continue."
	AlertRoleDenied    = "You do not have access to this page."
)

// Env is what a guard needs from the request it protects.
type Env struct {
	Session   SessionReader
	Validator *Validator
	Tamper    *TamperHandler
	Navigator Navigator
	// Ready reports whether the session has been resolved. Nil means it has.
	Ready func() bool
}

// RouteGuard gates one protected page for one visitor.
type RouteGuard struct {
	allowed map[domain.Role]struct{}
	env     Env
	alert   OneShot

	mu       sync.Mutex
	decision Decision
}

func NewRouteGuard(allowed []domain.Role, env Env) *RouteGuard {
	set := make(map[domain.Role]struct{}, len(allowed))
	for _, r := range allowed {
		set[r] = struct{}{}
	}
	return &RouteGuard{allowed: set, env: env}
}

// Evaluate advances the guard. While the session is unresolved it stays in
// Loading and does nothing visible.
func (g *RouteGuard) Evaluate(ctx context.Context) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.decision != Loading {
		return g.decision
	}
	if g.env.Ready != nil && !g.env.Ready() {
		return Loading
	}

	if v := g.env.Validator.Validate(ctx); !v.Valid {
		g.env.Tamper.Handle(ctx, v)
		g.decision = Redirecting
		return g.decision
	}

	snap := g.env.Session.Snapshot()
	if g.env.Tamper.State() != Idle {
		// The incident owns the redirect; a cleared session must not
		// trigger a second one.
		g.decision = Redirecting
		return g.decision
	}
	switch {
	case !snap.IsLoggedIn || snap.User == nil:
		g.deny(AlertLoginRequired)
	case !g.permits(snap.User.Role):
		g.deny(AlertRoleDenied)
	default:
		g.decision = Authorized
	}
	return g.decision
}

// Decision returns the current state without advancing it.
func (g *RouteGuard) Decision() Decision {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.decision
}

func (g *RouteGuard) permits(r domain.Role) bool {
	_, ok := g.allowed[r]
	return ok
}

func (g *RouteGuard) deny(message string) {
	if g.alert.Trigger() {
		g.env.Navigator.Alert(message)
		g.alert.Resolve()
	}
	g.env.Navigator.Redirect(LoginRoute)
	g.decision = Redirecting
}
