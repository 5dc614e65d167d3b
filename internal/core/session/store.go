// Package session holds the visitor's session record: a single-writer,
// many-reader container whose persistence is an explicit listener.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/homeservice/marketplace/internal/core/domain"
)

var ErrClosed = errors.New("session store closed")

// Listener observes committed transitions. Listeners run in commit order
// and may call Snapshot, but must not mutate the store they observe.
type Listener func(ctx context.Context, ev Event)

type subscription struct {
	id int
	fn Listener
}

// Store is the session container. Every mutation is a single transition:
// readers see either the state before it or the state after it.
type Store struct {
	mu     sync.RWMutex
	state  domain.Session
	subs   []subscription
	nextID int
	closed bool

	// emitMu keeps listener delivery in the same order as commits.
	emitMu sync.Mutex
}

// New creates a store holding initial. Use domain.Session{} for a fresh one.
func New(initial domain.Session) *Store {
	return &Store{state: initial.Clone()}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) Login(ctx context.Context, user domain.User, token string) error {
	return s.commit(ctx, EventLogin, func(prev domain.Session) (domain.Session, error) {
		return LoginTransition(prev, user, token)
	})
}

func (s *Store) Logout(ctx context.Context) error {
	return s.commit(ctx, EventLogout, func(prev domain.Session) (domain.Session, error) {
		return LogoutTransition(prev), nil
	})
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.commit(ctx, EventSetToken, func(prev domain.Session) (domain.Session, error) {
		return SetTokenTransition(prev, token)
	})
}

// Subscribe registers fn for every future transition.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Close drops every listener and rejects further mutations. Snapshot keeps
// working.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = nil
}

func (s *Store) commit(ctx context.Context, kind EventKind, transition func(domain.Session) (domain.Session, error)) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	prev := s.state
	next, err := transition(prev.Clone())
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	subs := append([]subscription(nil), s.subs...)

	s.emitMu.Lock()
	s.mu.Unlock()
	defer s.emitMu.Unlock()

	for _, sub := range subs {
		sub.fn(ctx, Event{Kind: kind, Prev: prev.Clone(), Next: next.Clone()})
	}
	return nil
}
