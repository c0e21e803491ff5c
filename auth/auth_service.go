package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uvenla/home-admin/backend"
	apperrors "github.com/uvenla/home-admin/internal/errors"
	"github.com/uvenla/home-admin/routes"
	"github.com/uvenla/home-admin/sessions"
	"github.com/uvenla/home-admin/token/jwt"
	"github.com/uvenla/home-admin/users"
)

// Authenticator is the backend's sign-in endpoint.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*backend.SignInResult, error)
}

// MonitorStopper is the part of the expiry monitor sign-out needs.
type MonitorStopper interface {
	Stop()
}

// Service runs the sign-in and sign-out flows.
type Service struct {
	authenticator Authenticator
	inspector     *jwt.Inspector
	nowTime       func() time.Time
}

type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithInspector replaces the default unverified token inspector.
func WithInspector(inspector *jwt.Inspector) ServiceOption {
	return func(s *Service) {
		if inspector != nil {
			s.inspector = inspector
		}
	}
}

func NewService(authenticator Authenticator, opts ...ServiceOption) *Service {
	s := &Service{
		authenticator: authenticator,
		inspector:     jwt.NewInspector(""),
		nowTime:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignIn authenticates against the backend and, when the account may use the
// admin area, persists the session. Nothing is written to store on failure.
//
// A token whose exp has already passed is still persisted: the credentials
// were good, and the gate or the first monitor check sends the user back to
// sign-in.
func (s *Service) SignIn(ctx context.Context, store SessionStore, creds Credentials) (sessions.Session, error) {
	creds = creds.Normalise()
	if err := creds.Validate(); err != nil {
		return sessions.Session{}, err
	}

	result, err := s.authenticator.SignIn(ctx, creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			log.Info().Str("email", creds.Email).Msg("sign-in rejected by backend")
		}
		return sessions.Session{}, err
	}

	role, ok := users.ParseRole(string(result.User.Role))
	if !ok || !role.AdminArea() {
		log.Warn().Str("email", creds.Email).Str("role", string(result.User.Role)).Msg("sign-in refused for role")
		return sessions.Session{}, fmt.Errorf("role %q: %w", result.User.Role, apperrors.ErrUnauthorizedRole)
	}

	claims, err := s.inspector.Introspect(result.AccessToken)
	if err != nil {
		log.Err(err).Str("email", creds.Email).Msg("backend issued an unreadable access token")
		return sessions.Session{}, err
	}

	session := sessions.Session{
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresAt:    claims.Exp,
	}
	session.User.Role = role
	if err := store.Save(ctx, session); err != nil {
		return sessions.Session{}, fmt.Errorf("persist session: %w", err)
	}

	event := log.Info().Str("user", session.User.ID).Str("role", role.String())
	if session.ExpiresAt != 0 {
		event = event.Time("expires", session.ExpiryTime())
		if session.Expired(s.nowTime()) {
			event = event.Bool("already_expired", true)
		}
	}
	event.Msg("signed in")
	return session, nil
}

// SignOut stops the profile's expiry monitor and clears its session.
func (s *Service) SignOut(ctx context.Context, store SessionStore, monitor MonitorStopper) error {
	if monitor != nil {
		monitor.Stop()
	}
	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	log.Info().Msg("signed out")
	return nil
}

// LandingPath is where a freshly signed-in user is sent.
func LandingPath(role users.RoleType) string {
	if !role.AdminArea() {
		return SignInPath
	}
	return string(routes.LayoutAdmin) + routes.PathProfile
}

// SignInPath is the public sign-in page.
const SignInPath = sessions.SignInPath
