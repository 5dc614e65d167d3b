package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/infrastructure/db/memory"
)

var alice = domain.User{ID: 11, Name: "alice", Role: domain.RoleCustomer}

func TestStore_LoginThenLogoutIsInitial(t *testing.T) {
	ctx := context.Background()
	s := New(domain.Session{})

	if err := s.Login(ctx, alice, "Bearer t1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	snap := s.Snapshot()
	if !snap.IsLoggedIn || snap.User == nil || snap.User.ID != 11 || snap.Token != "Bearer t1" {
		t.Fatalf("unexpected state after login: %+v", snap)
	}

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	snap = s.Snapshot()
	if !snap.IsInitial() {
		t.Fatalf("expected initial state after logout, got %+v", snap)
	}
}

func TestStore_LoginRejectsIncompleteIdentity(t *testing.T) {
	ctx := context.Background()
	s := New(domain.Session{})

	if err := s.Login(ctx, domain.User{Name: "nobody"}, "tok"); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for zero id, got %v", err)
	}
	if err := s.Login(ctx, alice, ""); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for empty token, got %v", err)
	}
	if !s.Snapshot().IsInitial() {
		t.Fatalf("failed login must not change state")
	}
}

func TestStore_SetTokenOnlyReplacesToken(t *testing.T) {
	ctx := context.Background()
	s := New(domain.Session{})
	_ = s.Login(ctx, alice, "t1")

	if err := s.SetToken(ctx, "t2"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	snap := s.Snapshot()
	if snap.Token != "t2" || snap.User.ID != alice.ID || !snap.IsLoggedIn {
		t.Fatalf("unexpected state: %+v", snap)
	}

	if err := s.SetToken(ctx, ""); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected empty token to be refused while logged in, got %v", err)
	}
}

func TestStore_SnapshotIsolation(t *testing.T) {
	s := New(domain.Session{})
	_ = s.Login(context.Background(), alice, "t1")

	snap := s.Snapshot()
	snap.User.Role = domain.RoleAdmin

	if s.Snapshot().User.Role != domain.RoleCustomer {
		t.Fatalf("mutating a snapshot leaked into the store")
	}
}

func TestStore_ListenersSeeOrderedEvents(t *testing.T) {
	ctx := context.Background()
	s := New(domain.Session{})

	var kinds []EventKind
	unsubscribe := s.Subscribe(func(_ context.Context, ev Event) {
		kinds = append(kinds, ev.Kind)
		if got := s.Snapshot(); got.Token != ev.Next.Token {
			t.Errorf("listener saw stale snapshot: %+v vs %+v", got, ev.Next)
		}
	})

	_ = s.Login(ctx, alice, "t1")
	_ = s.SetToken(ctx, "t2")
	_ = s.Logout(ctx)
	unsubscribe()
	_ = s.Login(ctx, alice, "t3")

	want := []EventKind{EventLogin, EventSetToken, EventLogout}
	if len(kinds) != len(want) {
		t.Fatalf("expected %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, kinds)
		}
	}
}

func TestStore_ConcurrentReadersNeverSeePartialState(t *testing.T) {
	ctx := context.Background()
	s := New(domain.Session{})

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if snap := s.Snapshot(); !snap.Valid() {
					t.Errorf("observed broken invariant: %+v", snap)
					return
				}
			}
		}()
	}

	for i := 0; i < 500; i++ {
		_ = s.Login(ctx, alice, "tok")
		_ = s.Logout(ctx)
	}
	close(stop)
	wg.Wait()
}

func TestStore_Close(t *testing.T) {
	s := New(domain.Session{})
	calls := 0
	s.Subscribe(func(context.Context, Event) { calls++ })
	s.Close()

	if err := s.Login(context.Background(), alice, "t"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("closed store must not notify")
	}
}

func TestPersister_RoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStorageProvider().ForClient("c1")

	s := New(domain.Session{})
	s.Subscribe(NewPersister(storage, StorageKey, zerolog.Nop()))
	_ = s.Login(ctx, alice, "Bearer t1")

	restored, err := Rehydrate(ctx, storage, StorageKey, zerolog.Nop())
	if err != nil {
		t.Fatalf("rehydrate: %v", err)
	}
	if !restored.IsLoggedIn || restored.User.ID != alice.ID || restored.User.Role != alice.Role || restored.Token != "Bearer t1" {
		t.Fatalf("unexpected restored session: %+v", restored)
	}

	_ = s.Logout(ctx)
	if _, ok, _ := storage.Get(ctx, StorageKey); ok {
		t.Fatalf("logout should remove the persisted record")
	}
	restored, _ = Rehydrate(ctx, storage, StorageKey, zerolog.Nop())
	if !restored.IsInitial() {
		t.Fatalf("expected initial state, got %+v", restored)
	}
}

func TestRehydrate_DiscardsBadRecords(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStorageProvider().ForClient("c1")

	for _, raw := range []string{
		"{not json",
		`{"isLoggedIn":true,"user":null,"token":"t"}`,
		`{"isLoggedIn":true,"user":{"id":1,"name":"x","role":"CUSTOMER"},"token":""}`,
	} {
		_ = storage.Set(ctx, StorageKey, raw, 0)
		got, err := Rehydrate(ctx, storage, StorageKey, zerolog.Nop())
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if !got.IsInitial() {
			t.Fatalf("expected initial state for %q, got %+v", raw, got)
		}
	}
}

type failingStorage struct{}

func (failingStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("down")
}
func (failingStorage) Set(context.Context, string, string, time.Duration) error {
	return errors.New("down")
}
func (failingStorage) Delete(context.Context, string) error { return errors.New("down") }

func TestRehydrate_StorageFailure(t *testing.T) {
	if _, err := Rehydrate(context.Background(), failingStorage{}, StorageKey, zerolog.Nop()); err == nil {
		t.Fatalf("expected storage failure to surface")
	}
}

// ---------------------------------------------------------------------------
// Resolver
// ---------------------------------------------------------------------------

type staticTokens struct {
	tok string
}

func (s staticTokens) Get(context.Context) (string, bool) { return s.tok, s.tok != "" }

type stubBackend struct {
	user  *domain.User
	err   error
	calls int
}

func (b *stubBackend) CheckLoginID(context.Context, string) (bool, error) { return true, nil }

func (b *stubBackend) ConfirmCustomer(context.Context, string) (*domain.User, error) {
	b.calls++
	return b.user, b.err
}

func TestResolver(t *testing.T) {
	ctx := context.Background()

	t.Run("no token", func(t *testing.T) {
		b := &stubBackend{user: &alice}
		s := New(domain.Session{})
		if err := NewResolver(b, zerolog.Nop()).Resolve(ctx, s, staticTokens{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.calls != 0 || s.Snapshot().IsLoggedIn {
			t.Fatalf("no lookup expected without a token")
		}
	})

	t.Run("confirmed profile logs in", func(t *testing.T) {
		b := &stubBackend{user: &alice}
		s := New(domain.Session{})
		if err := NewResolver(b, zerolog.Nop()).Resolve(ctx, s, staticTokens{tok: "Bearer x"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		snap := s.Snapshot()
		if !snap.IsLoggedIn || snap.User.ID != alice.ID || snap.Token != "Bearer x" {
			t.Fatalf("unexpected session: %+v", snap)
		}
	})

	t.Run("rejected token fails closed", func(t *testing.T) {
		b := &stubBackend{}
		s := New(domain.Session{})
		if err := NewResolver(b, zerolog.Nop()).Resolve(ctx, s, staticTokens{tok: "Bearer x"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Snapshot().IsLoggedIn {
			t.Fatalf("rejected token must not log in")
		}
	})

	t.Run("transport failure is unresolved", func(t *testing.T) {
		b := &stubBackend{err: errors.New("timeout")}
		s := New(domain.Session{})
		err := NewResolver(b, zerolog.Nop()).Resolve(ctx, s, staticTokens{tok: "Bearer x"})
		if !errors.Is(err, ErrUnresolved) {
			t.Fatalf("expected ErrUnresolved, got %v", err)
		}
	})

	t.Run("logged in session picks up new token", func(t *testing.T) {
		b := &stubBackend{user: &alice}
		s := New(domain.Session{})
		_ = s.Login(ctx, alice, "Bearer old")
		if err := NewResolver(b, zerolog.Nop()).Resolve(ctx, s, staticTokens{tok: "Bearer new"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.calls != 0 {
			t.Fatalf("logged-in session must not be re-confirmed")
		}
		if s.Snapshot().Token != "Bearer new" {
			t.Fatalf("expected token copy to be refreshed")
		}
	})
}
