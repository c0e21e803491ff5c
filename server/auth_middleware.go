package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/uvenla/home-admin/auth"
	apperrors "github.com/uvenla/home-admin/internal/errors"
	"github.com/uvenla/home-admin/sessions"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyProfileID stores the browser profile ID
	ContextKeyProfileID ContextKey = "profile_id"
	// ContextKeySession stores the authenticated session
	ContextKeySession ContextKey = "session"
)

// ProfileMiddleware binds every request to a browser profile, issuing a new
// profile cookie when the browser has none (or an unreadable one).
func (s *Server) ProfileMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID := ""
		if cookie, err := r.Cookie(s.config.GetProfileCookieName()); err == nil {
			if id, err := uuid.Parse(cookie.Value); err == nil {
				profileID = id.String()
			}
		}
		if profileID == "" {
			profileID = uuid.NewString()
			s.setProfileCookie(w, r, profileID)
		}

		ctx := context.WithValue(r.Context(), ContextKeyProfileID, profileID)
		next(w, r.WithContext(ctx))
	}
}

// RequireSession is the admin area gate. Unauthenticated profiles are sent to
// sign-in; authenticated ones get their expiry monitor started and the
// session injected into the request context.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			profileID := profileIDFromContext(r.Context())
			store := s.sessions.Store(profileID)

			decision := s.gate.Evaluate(r.Context(), store)
			if !decision.Authenticated() {
				s.endSession(r.Context(), store, decision)
				redirectSuccess(w, r, RouteSignIn)
				return
			}

			s.monitors.Ensure(r.Context(), store)

			ctx := context.WithValue(r.Context(), ContextKeySession, decision.Session)
			next(w, r.WithContext(ctx))
		}
	}
}

// endSession tidies up after the gate refused a profile: the monitor is
// stopped, a stale session is removed and the user is told why. A missing
// session is the normal signed-out state and gets no message.
func (s *Server) endSession(ctx context.Context, store *sessions.Store, decision auth.Decision) {
	profileID := store.ProfileID()
	s.monitors.Stop(profileID)

	switch {
	case apperrors.Is(decision.Reason, apperrors.ErrSessionExpired):
		if _, cleared := store.ClearIfExpired(ctx, s.nowTime()); cleared {
			s.flashes.Add(profileID, flashWarning, msgSessionExpired)
		}
	case apperrors.Is(decision.Reason, apperrors.ErrUnauthorizedRole):
		if err := store.Clear(ctx); err != nil {
			log.Err(err).Str("profile", profileID).Msg("failed to clear session of refused role")
		}
		s.flashes.Add(profileID, flashWarning, msgNoAccess)
	}
}

func profileIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyProfileID).(string)
	return id
}

func sessionFromContext(ctx context.Context) (sessions.Session, bool) {
	session, ok := ctx.Value(ContextKeySession).(sessions.Session)
	return session, ok
}
