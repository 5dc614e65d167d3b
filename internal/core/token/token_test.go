package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/homeservice/marketplace/internal/core/domain"
)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"abc", "Bearer abc"},
		{"Bearer abc", "Bearer abc"},
		{"bearer  abc", "Bearer abc"},
		{"BEARER\tabc", "Bearer abc"},
		{"Bearer Bearer abc", "Bearer abc"},
		{"bearerBearer abc", "Bearer abc"},
		{"  abc  ", "Bearer abc"},
	}

	for _, tc := range cases {
		got := Normalize(tc.in)
		if got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if again := Normalize(got); again != got {
			t.Errorf("Normalize not idempotent for %q: %q then %q", tc.in, got, again)
		}
	}
}

func TestStore_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	s := NewStore(mapStorage{}, zerolog.Nop())

	if _, ok := s.Get(ctx); ok {
		t.Fatalf("expected no token on empty storage")
	}

	if err := s.Set(ctx, "bearer xyz"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok := s.Get(ctx)
	if !ok || got != "Bearer xyz" {
		t.Fatalf("expected normalized token, got %q (ok=%v)", got, ok)
	}

	if err := s.Remove(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := s.Get(ctx); ok {
		t.Fatalf("expected token to be removed")
	}
}

func TestStore_WithoutStorage(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, zerolog.Nop())

	if got, ok := s.Get(ctx); ok || got != "" {
		t.Fatalf("expected absent token, got %q", got)
	}
	if err := s.Set(ctx, "abc"); err != nil {
		t.Fatalf("set should be a no-op, got %v", err)
	}
	if err := s.Remove(ctx); err != nil {
		t.Fatalf("remove should be a no-op, got %v", err)
	}
}

type mapStorage map[string]string

func (m mapStorage) Get(_ context.Context, k string) (string, bool, error) {
	v, ok := m[k]
	return v, ok, nil
}
func (m mapStorage) Set(_ context.Context, k, v string, _ time.Duration) error {
	m[k] = v
	return nil
}
func (m mapStorage) Delete(_ context.Context, k string) error {
	delete(m, k)
	return nil
}

type brokenStorage struct{}

func (brokenStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage down")
}
func (brokenStorage) Set(context.Context, string, string, time.Duration) error {
	return errors.New("storage down")
}
func (brokenStorage) Delete(context.Context, string) error { return errors.New("storage down") }

func TestStore_ReadFailureIsAbsence(t *testing.T) {
	s := NewStore(brokenStorage{}, zerolog.Nop())
	if _, ok := s.Get(context.Background()); ok {
		t.Fatalf("expected read failure to be reported as absence")
	}
	if err := s.Set(context.Background(), "abc"); err == nil {
		t.Fatalf("expected write failure to surface")
	}
}

func TestDecode(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	valid := sign(t, jwt.MapClaims{"sub": "42", "role": "customer", "name": "Kim", "exp": now.Add(time.Hour).Unix()})
	numeric := sign(t, jwt.MapClaims{"id": 7, "role": "MANAGER"})
	expired := sign(t, jwt.MapClaims{"sub": "42", "role": "ADMIN", "exp": now.Add(-time.Minute).Unix()})
	noRole := sign(t, jwt.MapClaims{"sub": "42"})
	badRole := sign(t, jwt.MapClaims{"sub": "42", "role": "ROOT"})
	noSub := sign(t, jwt.MapClaims{"role": "ADMIN"})

	cases := []struct {
		name    string
		raw     string
		reason  Reason
		subject int64
		role    domain.Role
	}{
		{"valid with scheme", "Bearer " + valid, ReasonOK, 42, domain.RoleCustomer},
		{"valid bare", valid, ReasonOK, 42, domain.RoleCustomer},
		{"numeric id claim", numeric, ReasonOK, 7, domain.RoleManager},
		{"expired", expired, ReasonExpired, 42, domain.RoleAdmin},
		{"empty", "", ReasonAbsent, 0, ""},
		{"scheme only", "Bearer ", ReasonAbsent, 0, ""},
		{"garbage", "Bearer not-a-token", ReasonMalformed, 0, ""},
		{"missing role", noRole, ReasonMalformed, 0, ""},
		{"unknown role", badRole, ReasonMalformed, 0, ""},
		{"missing subject", noSub, ReasonMalformed, 0, ""},
	}

	for _, tc := range cases {
		res := Decode(tc.raw, now)
		if res.Reason != tc.reason {
			t.Errorf("%s: reason = %s, want %s (err=%v)", tc.name, res.Reason, tc.reason, res.Err)
			continue
		}
		if res.Claims.Subject != tc.subject || res.Claims.Role != tc.role {
			t.Errorf("%s: claims = %+v", tc.name, res.Claims)
		}
		if tc.reason == ReasonMalformed && res.Err == nil {
			t.Errorf("%s: malformed result must carry an error", tc.name)
		}
	}
}

func TestDecode_CarriesName(t *testing.T) {
	raw := sign(t, jwt.MapClaims{"sub": "3", "role": "ADMIN", "name": "Lee"})
	res := Decode(raw, time.Now())
	if !res.OK() || res.Claims.Name != "Lee" || !res.Claims.ExpiresAt.IsZero() {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestVerify(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	good := sign(t, jwt.MapClaims{"sub": "1001", "role": "CUSTOMER", "exp": future})

	c, err := Verify("Bearer "+good, "secret")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if c.Subject != 1001 || c.Role != domain.RoleCustomer {
		t.Fatalf("unexpected claims: %+v", c)
	}

	tests := []struct {
		name   string
		raw    string
		secret string
	}{
		{"empty", "Bearer ", "secret"},
		{"wrong secret", good, "other"},
		{"expired", sign(t, jwt.MapClaims{"sub": "1", "role": "ADMIN", "exp": time.Now().Add(-time.Hour).Unix()}), "secret"},
		{"garbage", "not-a-jwt", "secret"},
	}
	for _, tc := range tests {
		if _, err := Verify(tc.raw, tc.secret); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("%s: expected ErrUnauthenticated, got %v", tc.name, err)
		}
	}
}
