package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/homeservice/marketplace/internal/core/domain"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second, zerolog.Nop())
}

func TestClient_CheckLoginID(t *testing.T) {
	var calls atomic.Int32
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/api/v1/auth/check-id" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"available": r.URL.Query().Get("loginId") == "free"})
	})

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	c.UseRedisCache(rdb, time.Minute)

	ctx := context.Background()
	if ok, err := c.CheckLoginID(ctx, "free"); err != nil || !ok {
		t.Fatalf("expected available, got %v (%v)", ok, err)
	}
	if ok, err := c.CheckLoginID(ctx, "free"); err != nil || !ok {
		t.Fatalf("expected cached available, got %v (%v)", ok, err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected second lookup served from cache, got %d calls", calls.Load())
	}
	if ok, _ := c.CheckLoginID(ctx, "taken"); ok {
		t.Fatalf("expected taken id to be unavailable")
	}
	if _, err := c.CheckLoginID(ctx, " "); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestClient_ConfirmCustomer(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantUser bool
		wantErr  bool
	}{
		{"profile", http.StatusOK, `{"id":1001,"name":"Kim","role":"CUSTOMER"}`, true, false},
		{"null profile", http.StatusOK, `null`, false, false},
		{"unknown role", http.StatusOK, `{"id":1,"role":"ROOT"}`, false, false},
		{"unauthorized", http.StatusUnauthorized, ``, false, false},
		{"server error", http.StatusBadGateway, ``, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer abc" {
					t.Errorf("expected normalized Authorization header, got %q", got)
				}
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			user, err := c.ConfirmCustomer(context.Background(), "bearer abc")
			if (err != nil) != tc.wantErr {
				t.Fatalf("unexpected error: %v", err)
			}
			if (user != nil) != tc.wantUser {
				t.Fatalf("unexpected user: %+v", user)
			}
		})
	}
}

func TestClient_Notifications(t *testing.T) {
	var marked atomic.Bool
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/notifications":
			_, _ = w.Write([]byte(`[{"id":7,"content":"hi","redirectUrl":"/x","createdAt":"2024-06-10T12:00:00Z","isRead":false}]`))
		case r.Method == http.MethodPatch && r.URL.Path == "/notifications/read-all":
			marked.Store(true)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	list, err := c.List(context.Background(), "abc")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != 7 || list[0].RedirectURL != "/x" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if err := c.MarkAllRead(context.Background(), "abc"); err != nil || !marked.Load() {
		t.Fatalf("mark all read: %v", err)
	}
}

func TestClient_StatusError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.List(context.Background(), "abc")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected StatusError 503, got %v", err)
	}
}
