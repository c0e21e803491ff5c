package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/uvenla/home-admin/auth"
	"github.com/uvenla/home-admin/routes"
)

// SignInPageData contains data for rendering the sign-in page
type SignInPageData struct {
	AppName string
	Title   string
	Error   string
	Email   string // Preserve email on error
	Flashes []Flash
}

// SignInPageHandler displays the sign-in page (GET /auth/sign-in)
func (s *Server) SignInPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID := profileIDFromContext(r.Context())
		store := s.sessions.Store(profileID)

		decision := s.gate.Evaluate(r.Context(), store)
		if decision.Authenticated() {
			redirectSuccess(w, r, auth.LandingPath(decision.Session.User.Role))
			return
		}
		s.endSession(r.Context(), store, decision)

		s.renderSignIn(w, http.StatusOK, SignInPageData{Flashes: s.flashes.Take(profileID)})
	}
}

// SignInSubmissionHandler processes the sign-in form submission
func (s *Server) SignInSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		profileID := profileIDFromContext(r.Context())
		store := s.sessions.Store(profileID)
		creds := auth.Credentials{
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
		}

		session, err := s.auth.SignIn(r.Context(), store, creds)
		if err != nil {
			log.Debug().Err(err).Str("profile", profileID).Msg("sign-in failed")
			// The form stays on screen, editable, with the warning inline.
			s.renderSignIn(w, http.StatusOK, SignInPageData{
				Error: userMessage(err),
				Email: creds.Normalise().Email,
			})
			return
		}

		// An already lapsed token is bounced by the gate with the expiry warning.
		if !session.Expired(s.nowTime()) {
			s.flashes.Add(profileID, flashSuccess, msgSignedIn)
		}
		redirectSuccess(w, r, auth.LandingPath(session.User.Role))
	}
}

// SignOutHandler clears the profile's session and stops its monitor
func (s *Server) SignOutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID := profileIDFromContext(r.Context())
		store := s.sessions.Store(profileID)

		_, hadSession := store.Load(r.Context())
		if err := s.auth.SignOut(r.Context(), store, profileMonitor{registry: s.monitors, profileID: profileID}); err != nil {
			log.Err(err).Str("profile", profileID).Msg("sign-out failed")
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}
		if hadSession {
			s.flashes.Add(profileID, flashSuccess, msgSignedOut)
		}
		redirectSuccess(w, r, RouteSignIn)
	}
}

// SessionStatusHandler is polled by admin pages. It answers 204 while the
// session is live and redirects to sign-in once it is gone.
func (s *Server) SessionStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID := profileIDFromContext(r.Context())
		if path, ok := s.monitors.TakeNavigation(profileID); ok {
			redirectSuccess(w, r, path)
			return
		}

		store := s.sessions.Store(profileID)
		decision := s.gate.Evaluate(r.Context(), store)
		if !decision.Authenticated() {
			s.endSession(r.Context(), store, decision)
			redirectSuccess(w, r, RouteSignIn)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) renderSignIn(w http.ResponseWriter, status int, data SignInPageData) {
	data.AppName = s.config.GetAppName()
	data.Title = routes.Resolve(s.catalog, RouteSignIn).Name

	html, err := s.templates.renderHTML("sign_in.html", data)
	if err != nil {
		log.Err(err).Msg("Failed to render sign-in template")
		http.Error(w, "Failed to render sign-in page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(html))
}

// profileMonitor adapts the registry to the single monitor sign-out stops.
type profileMonitor struct {
	registry  *monitorRegistry
	profileID string
}

func (p profileMonitor) Stop() {
	p.registry.Stop(p.profileID)
}

const contentTypeHTML = "text/html; charset=utf-8"
