package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-notes-keeper/models"
)

const sessionCookieName = "session"

// setSessionCookie stores the access token in an HttpOnly cookie that
// expires together with the token.
func (h *Handler) setSessionCookie(w http.ResponseWriter, access models.Token) {
	expires := access.Expiry()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    access.SignedString,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
