package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/homeservice/marketplace/internal/api/middleware"
	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/infrastructure/db/memory"
)

const (
	testCookie   = "hs_client"
	testClientID = "6f1c2f1e-5a0b-4c1d-9a8e-3b7d2c4e5f60"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// visitorRequest builds a request that carries the fixed test client cookie,
// so consecutive calls share one storage namespace.
func visitorRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.AddCookie(&http.Cookie{Name: testCookie, Value: testClientID})
	return req
}

// serveVisitor runs h behind the LoadVisitor middleware backed by provider.
func serveVisitor(e *echo.Echo, provider *memory.StorageProvider, req *http.Request, h echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	mw := middleware.LoadVisitor(middleware.VisitorConfig{
		CookieName: testCookie,
		Storage:    provider,
		Log:        zerolog.Nop(),
	})
	return rec, mw(h)(c)
}

func signToken(t *testing.T, sub string, role domain.Role) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": string(role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}
