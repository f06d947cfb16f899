package middleware

import (
	"net/http"
	"time"
)

// SessionCookieName is the CMS access-gate cookie. Its value is the CMS user
// id; the gate only checks presence, it is not a signed token.
const SessionCookieName = "cms_session"

// RequireSession gates CMS routes on the presence of the session cookie,
// redirecting unauthenticated requests to loginPath.
func RequireSession(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !hasSession(r) {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RedirectIfAuthed sends requests that already carry the session cookie away
// from the login page.
func RedirectIfAuthed(target string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hasSession(r) {
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SetSessionCookie issues the HTTP-only session cookie for userID.
func SetSessionCookie(w http.ResponseWriter, userID string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    userID,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func hasSession(r *http.Request) bool {
	c, err := r.Cookie(SessionCookieName)
	return err == nil && c.Value != ""
}
