package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uvenla/home-admin/auth"
	"github.com/uvenla/home-admin/backend"
	"github.com/uvenla/home-admin/internal/config"
	"github.com/uvenla/home-admin/routes"
	"github.com/uvenla/home-admin/sessions"
	"github.com/uvenla/home-admin/token/jwt"
)

// Deps are the collaborators the server is wired with.
type Deps struct {
	Sessions  *sessions.Manager
	Scheduler sessions.Scheduler
	Backend   *backend.Client
	NowTime   func() time.Time // defaults to time.Now
}

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	nowTime   func() time.Time
	catalog   []routes.Route
	sessions  *sessions.Manager
	gate      *auth.Gate
	auth      *auth.Service
	backend   *backend.Client
	monitors  *monitorRegistry
	flashes   *flashStore
	templates *templates
}

func New(cfg config.Config, deps Deps) (*Server, error) {
	if deps.Sessions == nil || deps.Scheduler == nil || deps.Backend == nil {
		return nil, fmt.Errorf("[Server New] sessions, scheduler and backend are required")
	}
	if deps.NowTime == nil {
		deps.NowTime = time.Now
	}

	tmpls, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}

	s := &Server{
		env:       cfg.GetEnv(),
		mux:       http.NewServeMux(),
		config:    cfg,
		nowTime:   deps.NowTime,
		catalog:   routes.Catalog(),
		sessions:  deps.Sessions,
		gate:      auth.NewGate(deps.NowTime),
		backend:   deps.Backend,
		flashes:   newFlashStore(),
		templates: tmpls,
	}
	s.auth = auth.NewService(deps.Backend,
		auth.WithNowTime(deps.NowTime),
		auth.WithInspector(jwt.NewInspector(cfg.GetJWTSecret())),
	)
	s.monitors = newMonitorRegistry(deps.Scheduler, cfg.GetSessionPollInterval(), deps.NowTime, s.sessionExpired)

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Shutdown stops every running expiry monitor.
func (s *Server) Shutdown(_ context.Context) {
	s.monitors.StopAll()
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

// sessionExpired runs when a profile's monitor clears an expired session.
func (s *Server) sessionExpired(profileID string, session sessions.Session) {
	log.Info().Str("profile", profileID).Str("user", session.User.ID).Msg("session expired")
	s.flashes.Add(profileID, flashWarning, msgSessionExpired)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}

func colourMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + resetColor
	}
	return gray + paddedMethod + resetColor
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
