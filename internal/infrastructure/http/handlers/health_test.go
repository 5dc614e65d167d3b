package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func serve(t *testing.T, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestLiveness(t *testing.T) {
	rec := serve(t, NewHealthHandler().Liveness)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness_AllHealthy(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	rec := serve(t, NewHealthDependenciesHandler(map[string]Probe{"redis": RedisProbe(rdb)}).Readiness)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestReadiness_Degraded(t *testing.T) {
	probes := map[string]Probe{
		"ok":     func(context.Context) error { return nil },
		"broken": func(context.Context) error { return errors.New("down") },
	}
	rec := serve(t, NewHealthDependenciesHandler(probes).Readiness)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var body readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "degraded" || body.Dependencies["broken"].Error != "down" || body.Dependencies["ok"].Status != "ok" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestReadiness_NoDependencies(t *testing.T) {
	rec := serve(t, NewHealthDependenciesHandler(nil).Readiness)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with nothing to check, got %d", rec.Code)
	}
}
