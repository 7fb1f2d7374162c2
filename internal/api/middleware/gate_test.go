package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func gateConfig() GateConfig {
	return GateConfig{
		LoginPath:      "/login",
		HomePath:       "/dashboard",
		BypassPrefixes: []string{"/api/", "/health", "/assets/"},
	}
}

func runGate(t *testing.T, path string, cookie bool) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "opaque"})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reachedNext := false
	mw := Gate(gateConfig())
	handler := mw(func(c echo.Context) error {
		reachedNext = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, reachedNext
}

func TestGate_RedirectsUnauthenticatedPage(t *testing.T) {
	rec, reachedNext := runGate(t, "/dashboard", false)
	if reachedNext {
		t.Fatalf("handler ran without session")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestGate_AuthenticatedLoginRedirectsHome(t *testing.T) {
	rec, reachedNext := runGate(t, "/login", true)
	if reachedNext {
		t.Fatalf("login page served despite session")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}
}

func TestGate_LoginPageServedWithoutSession(t *testing.T) {
	rec, reachedNext := runGate(t, "/login", false)
	if !reachedNext {
		t.Fatalf("login page not reachable")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGate_BypassesAPIAndAssets(t *testing.T) {
	for _, path := range []string{"/api/members", "/health", "/assets/app.js"} {
		_, reachedNext := runGate(t, path, false)
		if !reachedNext {
			t.Fatalf("%s should bypass the gate", path)
		}
	}
}

func TestGate_PageServedWithSession(t *testing.T) {
	rec, reachedNext := runGate(t, "/dashboard", true)
	if !reachedNext {
		t.Fatalf("authenticated page request blocked")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
