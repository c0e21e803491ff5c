package server

import (
	"net/http"
)

// profileCookieMaxAge keeps the browser profile for a year.
const profileCookieMaxAge = 365 * 24 * 60 * 60

func (s *Server) setProfileCookie(w http.ResponseWriter, r *http.Request, profileID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetProfileCookieName(),
		Value:    profileID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.GetCookieSecure() || getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   profileCookieMaxAge,
	})
}

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
