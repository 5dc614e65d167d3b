package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrClaimsMismatch = errors.New("token claims do not match session")
)

// Session is the locally persisted belief about who the visitor is.
// The zero value is the initial, logged-out state.
type Session struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	User       *User  `json:"user"`
	Token      string `json:"token"`
}

// Clone returns a copy that shares no memory with s.
func (s Session) Clone() Session {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}

// IsInitial reports whether s carries no identity at all.
func (s Session) IsInitial() bool {
	return !s.IsLoggedIn && s.User == nil && s.Token == ""
}

// Valid checks the login invariant: a logged-in session always has a user
// with an id and a token.
func (s Session) Valid() bool {
	if !s.IsLoggedIn {
		return true
	}
	return s.User != nil && s.User.ID != 0 && s.Token != ""
}

// Claims are the informational fields carried inside a credential. They are
// decoded without a secret and never trusted for anything but comparison.
type Claims struct {
	Subject   int64
	Role      Role
	Name      string
	ExpiresAt time.Time
}
