package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brandmetro/transit-ads-platform/internal/auth"
	"github.com/brandmetro/transit-ads-platform/internal/contact"
	httpmiddleware "github.com/brandmetro/transit-ads-platform/internal/http/middleware"
	"github.com/brandmetro/transit-ads-platform/internal/leads"
	"github.com/brandmetro/transit-ads-platform/internal/masterdata"
	"github.com/brandmetro/transit-ads-platform/internal/products"
	"github.com/brandmetro/transit-ads-platform/internal/stations"
	"github.com/brandmetro/transit-ads-platform/pkg/logging"
)

// newGateRouter wires handlers over nil stores; the tests below only exercise
// routes that never reach a store.
func newGateRouter() http.Handler {
	logger := logging.Default()
	return New(&Config{
		Logger:    logger,
		Stations:  stations.NewHandler(nil, 0, nil, logger),
		Lines:     masterdata.NewLinesHandler(nil, logger),
		Audiences: masterdata.NewNameTableHandler(nil, "audience", logger),
		Types:     masterdata.NewNameTableHandler(nil, "type", logger),
		Products:  products.NewHandler(nil, logger),
		Leads:     leads.NewHandler(nil, nil, nil, nil, nil, logger),
		Contact:   contact.NewHandler(nil, logger),
		Auth:      auth.NewHandler(nil, auth.BootstrapCredentials{Username: "admin", Password: "pw"}, 0, logger),
	})
}

func TestCMSWithoutCookieRedirectsToLogin(t *testing.T) {
	router := newGateRouter()

	for _, path := range []string{"/cms", "/cms/api/stations", "/cms/api/leads"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusSeeOther {
			t.Errorf("%s: status = %d, want 303", path, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/login" {
			t.Errorf("%s: Location = %q, want /login", path, loc)
		}
	}
}

func TestLoginPageWithCookieRedirectsToCMS(t *testing.T) {
	router := newGateRouter()

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: httpmiddleware.SessionCookieName, Value: "1"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/cms" {
		t.Errorf("Location = %q, want /cms", loc)
	}
}

func TestLoginPageWithoutCookieIsServed(t *testing.T) {
	router := newGateRouter()

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestHealthWithoutDB(t *testing.T) {
	router := newGateRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
