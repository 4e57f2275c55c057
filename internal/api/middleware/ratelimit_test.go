package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newLimitedEcho(perSecond float64, calls *int) *echo.Echo {
	e := echo.New()
	e.POST("/auth/login", func(c echo.Context) error {
		*calls++
		return c.NoContent(http.StatusOK)
	}, LoginRateLimiter(perSecond))
	return e
}

func postLogin(e *echo.Echo) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "203.0.113.7:4321"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLoginRateLimiter_DeniesBurst(t *testing.T) {
	calls := 0
	e := newLimitedEcho(0.5, &calls)

	if rec := postLogin(e); rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}

	rec := postLogin(e)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", rec.Code)
	}
	if calls != 1 {
		t.Fatalf("expected the handler to run once, ran %d times", calls)
	}
}

func TestLoginRateLimiter_Disabled(t *testing.T) {
	calls := 0
	e := newLimitedEcho(0, &calls)

	for i := 0; i < 20; i++ {
		if rec := postLogin(e); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
	if calls != 20 {
		t.Fatalf("expected 20 handler calls, got %d", calls)
	}
}
