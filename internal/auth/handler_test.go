package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brandmetro/transit-ads-platform/internal/http/middleware"
	"github.com/brandmetro/transit-ads-platform/pkg/logging"
)

type fakeStore struct {
	users map[string]*User
}

func (f *fakeStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func newTestHandler() *Handler {
	store := &fakeStore{users: map[string]*User{
		"admin": {ID: 1, Username: "admin", Password: "metro-secret"},
	}}
	return NewHandler(store, BootstrapCredentials{Username: "boot", Password: "strap"},
		time.Hour, logging.Default())
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestLogin_SetsCookieOnMatch(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"admin","password":"metro-secret"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	c := sessionCookie(t, w)
	if c == nil || c.Value != "1" {
		t.Fatalf("cookie = %+v", c)
	}
	if !c.HttpOnly {
		t.Error("cookie not HTTP-only")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v", c.SameSite)
	}
}

func TestLogin_WrongPasswordIs401(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"admin","password":"guess"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if sessionCookie(t, w) != nil {
		t.Error("cookie set on failed login")
	}
}

func TestLogin_BootstrapCredentials(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"boot","password":"strap"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if c := sessionCookie(t, w); c == nil || c.Value != "0" {
		t.Fatalf("cookie = %+v", c)
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	w := httptest.NewRecorder()
	h.Logout(w, req)

	c := sessionCookie(t, w)
	if c == nil || c.MaxAge != -1 {
		t.Fatalf("cookie = %+v, want MaxAge -1", c)
	}
}
