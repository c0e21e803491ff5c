package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/uvenla/home-admin/backend"
	"github.com/uvenla/home-admin/server"
	"github.com/uvenla/home-admin/sessions"
)

var epoch = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

// testConfig satisfies config.Config without touching the environment.
type testConfig struct {
	env string
}

func (c testConfig) GetPort() string                       { return ":0" }
func (c testConfig) GetAppName() string                    { return "Uvenla Home Admin" }
func (c testConfig) GetEnv() string                        { return c.env }
func (c testConfig) GetLogLevel() string                   { return "disabled" }
func (c testConfig) GetAPIURL() string                     { return "" }
func (c testConfig) GetAPITimeout() time.Duration          { return time.Second }
func (c testConfig) GetJWTSecret() string                  { return "" }
func (c testConfig) GetSessionStore() string               { return "memory" }
func (c testConfig) GetSessionBoltPath() string            { return "" }
func (c testConfig) GetRedisURL() string                   { return "" }
func (c testConfig) GetSessionPollInterval() time.Duration { return time.Minute }
func (c testConfig) GetProfileCookieName() string          { return "uvenla_profile" }
func (c testConfig) GetCookieSecure() bool                 { return false }

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// manualScheduler runs jobs only when Tick is called.
type manualScheduler struct {
	mu   sync.Mutex
	next int
	jobs map[int]func()
}

func (s *manualScheduler) Every(_ time.Duration, job func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.jobs == nil {
		s.jobs = map[int]func(){}
	}
	id := s.next
	s.next++
	s.jobs[id] = job
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.jobs, id)
	}
}

func (s *manualScheduler) Tick() {
	s.mu.Lock()
	jobs := make([]func(), 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, job)
	}
	s.mu.Unlock()
	for _, job := range jobs {
		job()
	}
}

func (s *manualScheduler) Jobs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// account is a user the fake backend knows.
type account struct {
	id    string
	role  string
	exp   int64
	token string
}

// fakeBackend imitates the Uvenla REST API.
type fakeBackend struct {
	t        *testing.T
	accounts map[string]*account

	mu       sync.Mutex
	lastAuth string
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	fb := &fakeBackend{t: t, accounts: map[string]*account{}}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBackend) addAccount(email, id, role string, exp int64) {
	claims := jwtlib.MapClaims{"id": id}
	if exp != 0 {
		claims["exp"] = exp
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("backend"))
	require.NoError(fb.t, err)
	fb.accounts[email] = &account{id: id, role: role, exp: exp, token: token}
}

func (fb *fakeBackend) write(w http.ResponseWriter, status int, message string, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"message": message, "payload": payload})
}

func (fb *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	fb.lastAuth = r.Header.Get("Authorization")
	fb.mu.Unlock()

	if r.Method == http.MethodPost && r.URL.Path == "/auth/login" {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		acc, ok := fb.accounts[body["email"]]
		if !ok || body["password"] != "secret" {
			fb.write(w, http.StatusUnauthorized, "Email hoặc mật khẩu không chính xác", nil)
			return
		}
		fb.write(w, http.StatusOK, "Đăng nhập thành công", map[string]any{
			"user":         map[string]any{"_id": acc.id, "name": "Nguyen " + acc.id, "email": body["email"], "role": acc.role},
			"accessToken":  acc.token,
			"refreshToken": "refresh-" + acc.id,
		})
		return
	}

	acc := fb.accountForBearer(r)
	if acc == nil {
		fb.write(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	switch {
	case r.URL.Path == "/banner":
		fb.write(w, http.StatusUnauthorized, "jwt expired", nil)
	case r.URL.Path == "/booking":
		fb.write(w, http.StatusOK, "", map[string]any{
			"bookings": []map[string]any{
				{"_id": "b1", "customerName": "Tran An", "status": "pending"},
				{"_id": "b2", "customerName": "Le Binh", "status": "done"},
			},
			"currentPage":   1,
			"totalPages":    2,
			"totalBookings": 12,
		})
	case strings.HasPrefix(r.URL.Path, "/user/"):
		fb.write(w, http.StatusOK, "", map[string]any{
			"_id": acc.id, "name": "Nguyen " + acc.id, "email": acc.id + "@uvenla.vn", "role": acc.role, "phone": "0901234567",
		})
	default:
		fb.write(w, http.StatusOK, "", []any{})
	}
}

func (fb *fakeBackend) lastAuthorization() string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.lastAuth
}

func (fb *fakeBackend) accountForBearer(r *http.Request) *account {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	for _, acc := range fb.accounts {
		if acc.token == token {
			return acc
		}
	}
	return nil
}

type harness struct {
	t         *testing.T
	srv       *server.Server
	backend   *fakeBackend
	clock     *fakeClock
	scheduler *manualScheduler
	repo      *sessions.InMemoryRepo
}

func newHarness(t *testing.T) *harness {
	fb, apiSrv := newFakeBackend(t)
	clock := &fakeClock{now: epoch}
	scheduler := &manualScheduler{}
	repo := sessions.NewInMemoryRepo()

	srv, err := server.New(testConfig{env: "TEST"}, server.Deps{
		Sessions:  sessions.NewManager(repo),
		Scheduler: scheduler,
		Backend:   backend.New(apiSrv.URL),
		NowTime:   clock.Now,
	})
	require.NoError(t, err)
	t.Cleanup(func() { srv.Shutdown(context.Background()) })

	return &harness{t: t, srv: srv, backend: fb, clock: clock, scheduler: scheduler, repo: repo}
}

// browser is one browser profile: it keeps the profile cookie between requests.
type browser struct {
	h      *harness
	cookie *http.Cookie
}

func (h *harness) browser() *browser {
	return &browser{h: h}
}

func (b *browser) do(method, path string, form url.Values, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}

	rec := httptest.NewRecorder()
	b.h.srv.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == "uvenla_profile" {
			b.cookie = c
		}
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil, nil)
}

func (b *browser) signIn(email, password string) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, "/auth/sign-in", url.Values{"email": {email}, "password": {password}}, nil)
}

func requireRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	require.Equal(t, location, rec.Header().Get("Location"))
}
