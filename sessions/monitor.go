package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultPollInterval is how often a Watching monitor re-reads the session.
const DefaultPollInterval = 60 * time.Second

// SignInPath is where the monitor asks to navigate once a session expires.
const SignInPath = "/auth/sign-in"

type monitorState int

const (
	stateIdle monitorState = iota
	stateWatching
)

// Monitor invalidates a profile's session once its access token expires.
// It is Idle until Start and Watching until Stop. Each check reads the store
// afresh; nothing about the session is cached between ticks.
type Monitor struct {
	store     *Store
	scheduler Scheduler
	interval  time.Duration
	now       func() time.Time
	onExpired func(Session)
	onMissing func()
	navigate  func(path string)

	mu     sync.Mutex
	state  monitorState
	cancel func()
}

type MonitorOption func(*Monitor)

// WithInterval overrides DefaultPollInterval.
func WithInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) MonitorOption {
	return func(m *Monitor) {
		if now != nil {
			m.now = now
		}
	}
}

// OnExpired registers the "session expired" notification.
func OnExpired(fn func(Session)) MonitorOption {
	return func(m *Monitor) {
		m.onExpired = fn
	}
}

// OnMissing registers the handler for a check that finds no session at all,
// for example after sign-out elsewhere or storage eviction. The monitor keeps
// watching; stopping it is up to the handler.
func OnMissing(fn func()) MonitorOption {
	return func(m *Monitor) {
		m.onMissing = fn
	}
}

// OnNavigate registers the handler for navigation requests.
func OnNavigate(fn func(path string)) MonitorOption {
	return func(m *Monitor) {
		m.navigate = fn
	}
}

func NewMonitor(store *Store, scheduler Scheduler, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		store:     store,
		scheduler: scheduler,
		interval:  DefaultPollInterval,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start moves the monitor to Watching, runs one check straight away and then
// schedules a check every interval. Starting a Watching monitor does nothing.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.state == stateWatching {
		m.mu.Unlock()
		return
	}
	m.state = stateWatching
	m.cancel = m.scheduler.Every(m.interval, func() {
		m.Check(context.WithoutCancel(ctx))
	})
	m.mu.Unlock()

	m.Check(ctx)
}

// Stop moves the monitor to Idle. No check clears the session after Stop
// returns, including ticks the scheduler had already dispatched.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateIdle {
		return
	}
	m.state = stateIdle
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Watching reports whether the monitor is started.
func (m *Monitor) Watching() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == stateWatching
}

// Check runs a single expiry check and reports whether it cleared the session.
// It is a no-op while Idle.
func (m *Monitor) Check(ctx context.Context) bool {
	m.mu.Lock()
	if m.state != stateWatching {
		m.mu.Unlock()
		return false
	}
	expired, outcome := m.store.expire(ctx, m.now())
	m.mu.Unlock()

	switch outcome {
	case outcomeMissing:
		if m.onMissing != nil {
			m.onMissing()
		}
		return false
	case outcomeLive:
		return false
	}

	log.Info().
		Str("profile", m.store.ProfileID()).
		Str("user", expired.User.Email).
		Time("expires_at", expired.ExpiryTime()).
		Msg("session expired")

	// Callbacks run outside the lock so they may call Stop.
	if m.onExpired != nil {
		m.onExpired(expired)
	}
	if m.navigate != nil {
		m.navigate(SignInPath)
	}
	return true
}
