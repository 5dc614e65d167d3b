package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/homeservice/marketplace/internal/api/middleware"
	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/core/service"
	"github.com/homeservice/marketplace/internal/infrastructure/db/fixtures"
	"github.com/homeservice/marketplace/internal/infrastructure/db/memory"
	infrahttp "github.com/homeservice/marketplace/internal/infrastructure/http"
)

const testSecret = "router-secret"

func newTestRouter(t *testing.T, loginPerMinute int) *echo.Echo {
	t.Helper()
	accounts, err := memory.NewAccountRepository(fixtures.Accounts(), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("accounts: %v", err)
	}
	directory := service.NewAuthService(accounts, testSecret, time.Hour)
	repo := memory.NewReservationRepository(memory.NewReservationStore(fixtures.Reservations()))
	feed := memory.NewNotificationFeed(fixtures.Notifications())
	reg := prometheus.NewRegistry()

	return NewRouter(Deps{
		Log:            zerolog.Nop(),
		JWTSecret:      testSecret,
		Storage:        memory.NewStorageProvider(),
		ClientCookie:   "hs_client",
		SocialTTL:      time.Minute,
		LoginPerMinute: loginPerMinute,
		Directory:      directory,
		Reservations:   service.NewReservationService(repo, zerolog.Nop()),
		Notifications:  service.NewNotificationService(feed, nil, zerolog.Nop()),
		Ops:            infrahttp.Ops{Registerer: reg, Gatherer: reg},
	})
}

func do(e *echo.Echo, method, target, body string, cookies []*http.Cookie, header http.Header) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// login signs in through the router and returns the visitor cookie and token.
func login(t *testing.T, e *echo.Echo, loginID, password string) ([]*http.Cookie, string) {
	t.Helper()
	rec := do(e, http.MethodPost, "/auth/login", `{"loginId":"`+loginID+`","password":"`+password+`"}`, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d (%s)", loginID, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login response without token: %s", rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("login did not issue a visitor cookie")
	}
	return cookies, resp.Token
}

func TestRouter_GuardedPages(t *testing.T) {
	e := newTestRouter(t, 0)

	rec := do(e, http.MethodGet, "/customer", "", nil, nil)
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("anonymous visitor: expected redirect to /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	if rec.Header().Get(middleware.HeaderGuardAlert) == "" {
		t.Fatalf("anonymous visitor: expected guard alert")
	}

	cookies, _ := login(t, e, "minji", "customer123")

	rec = do(e, http.MethodGet, "/customer/reservations", "", cookies, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("customer page: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodGet, "/admin", "", cookies, nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("customer on admin page: expected 302, got %d", rec.Code)
	}

	// The wrong-role redirect keeps the session.
	rec = do(e, http.MethodGet, "/auth/session", "", cookies, nil)
	var sess struct {
		Session domain.Session `json:"session"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &sess)
	if !sess.Session.IsLoggedIn {
		t.Fatalf("expected session to survive a role redirect")
	}
}

func TestRouter_ReservationAPI(t *testing.T) {
	e := newTestRouter(t, 0)

	if rec := do(e, http.MethodGet, "/reservations", "", nil, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", rec.Code)
	}

	_, tok := login(t, e, "minji", "customer123")
	header := http.Header{echo.HeaderAuthorization: []string{"Bearer " + tok}}

	rec := do(e, http.MethodGet, "/reservations", "", nil, header)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodGet, "/reservation/nonexistent-id", "", nil, header)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404, got %d", rec.Code)
	}
	var errResp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil || errResp.Error == "" {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}

	rec = do(e, http.MethodPost, "/reservations/reset", "", nil, header)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("customer reset: expected 403, got %d", rec.Code)
	}
}

func TestRouter_MockIdentityBackend(t *testing.T) {
	e := newTestRouter(t, 0)

	rec := do(e, http.MethodGet, "/api/v1/auth/check-id?loginId=minji", "", nil, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"available":false`) {
		t.Fatalf("taken id: got %d %s", rec.Code, rec.Body.String())
	}

	_, tok := login(t, e, "minji", "customer123")
	rec = do(e, http.MethodGet, "/customers/confirm", "", nil, http.Header{echo.HeaderAuthorization: []string{"Bearer " + tok}})
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm: expected 200, got %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/customers/confirm", "", nil, http.Header{echo.HeaderAuthorization: []string{"Bearer forged"}})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("forged token: expected 401, got %d", rec.Code)
	}
}

func TestRouter_OpsRoutes(t *testing.T) {
	e := newTestRouter(t, 0)

	if rec := do(e, http.MethodGet, "/health", "", nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/health/ready", "", nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("readiness without probes: expected 200, got %d", rec.Code)
	}

	do(e, http.MethodGet, "/health", "", nil, nil)
	rec := do(e, http.MethodGet, "/metrics", "", nil, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "homeservice_http_requests_total") {
		t.Fatalf("metrics: expected request counter, got %d", rec.Code)
	}
}

func TestRouter_LoginRateLimit(t *testing.T) {
	e := newTestRouter(t, 1)

	login(t, e, "minji", "customer123")
	rec := do(e, http.MethodPost, "/auth/login", `{"loginId":"minji","password":"customer123"}`, nil, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on the second attempt, got %d", rec.Code)
	}
}
