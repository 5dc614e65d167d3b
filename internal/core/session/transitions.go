package session

import "github.com/homeservice/marketplace/internal/core/domain"

// EventKind names the mutation that produced an Event.
type EventKind string

const (
	EventLogin    EventKind = "login"
	EventLogout   EventKind = "logout"
	EventSetToken EventKind = "set_token"
)

// Event describes one committed transition. Prev and Next are snapshots.
type Event struct {
	Kind EventKind
	Prev domain.Session
	Next domain.Session
}

// LoginTransition replaces the user and token in one step.
func LoginTransition(_ domain.Session, user domain.User, token string) (domain.Session, error) {
	if user.ID == 0 || token == "" {
		return domain.Session{}, domain.ErrInvalidSession
	}
	u := user
	return domain.Session{IsLoggedIn: true, User: &u, Token: token}, nil
}

// LogoutTransition always yields the initial state.
func LogoutTransition(domain.Session) domain.Session {
	return domain.Session{}
}

// SetTokenTransition replaces only the token. A logged-in session cannot
// drop its token this way; that is what logout is for.
func SetTokenTransition(prev domain.Session, token string) (domain.Session, error) {
	if prev.IsLoggedIn && token == "" {
		return prev, domain.ErrInvalidSession
	}
	next := prev.Clone()
	next.Token = token
	return next, nil
}
