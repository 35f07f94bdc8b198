package session

import (
	"net/http"
	"time"

	"github.com/dmarquez-dev/mercato-storefront/pkg/config"
)

// WriteCookie sets the session cookie. HttpOnly always; Secure per config so
// local development over plain HTTP still works.
func WriteCookie(w http.ResponseWriter, cfg config.SessionConfig, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   int(cfg.TTL / time.Second),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func ClearCookie(w http.ResponseWriter, cfg config.SessionConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadCookie returns the session id from the request, or empty when absent.
func ReadCookie(r *http.Request, cfg config.SessionConfig) string {
	cookie, err := r.Cookie(cfg.CookieName)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}
