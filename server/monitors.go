package server

import (
	"context"
	"sync"
	"time"

	"github.com/uvenla/home-admin/sessions"
)

// monitorRegistry owns one expiry monitor per signed-in browser profile.
// All monitors share the server's scheduler.
type monitorRegistry struct {
	mu          sync.Mutex
	scheduler   sessions.Scheduler
	interval    time.Duration
	nowTime     func() time.Time
	onExpired   func(profileID string, session sessions.Session)
	monitors    map[string]*sessions.Monitor
	navigations map[string]string
}

func newMonitorRegistry(scheduler sessions.Scheduler, interval time.Duration, nowTime func() time.Time, onExpired func(string, sessions.Session)) *monitorRegistry {
	return &monitorRegistry{
		scheduler:   scheduler,
		interval:    interval,
		nowTime:     nowTime,
		onExpired:   onExpired,
		monitors:    make(map[string]*sessions.Monitor),
		navigations: make(map[string]string),
	}
}

// Ensure starts the profile's monitor unless it is already watching.
func (m *monitorRegistry) Ensure(ctx context.Context, store *sessions.Store) {
	profileID := store.ProfileID()

	m.mu.Lock()
	monitor, ok := m.monitors[profileID]
	if !ok {
		monitor = sessions.NewMonitor(store, m.scheduler,
			sessions.WithInterval(m.interval),
			sessions.WithClock(m.nowTime),
			sessions.OnExpired(func(session sessions.Session) { m.expired(profileID, monitor, session) }),
			sessions.OnMissing(func() { m.drop(profileID, monitor) }),
			sessions.OnNavigate(func(path string) { m.navigate(profileID, path) }),
		)
		m.monitors[profileID] = monitor
	}
	delete(m.navigations, profileID)
	m.mu.Unlock()

	// Start runs the first check synchronously and that check may call back
	// into the registry, so the lock must not be held here.
	monitor.Start(ctx)
}

func (m *monitorRegistry) expired(profileID string, monitor *sessions.Monitor, session sessions.Session) {
	m.drop(profileID, monitor)
	if m.onExpired != nil {
		m.onExpired(profileID, session)
	}
}

// drop stops a monitor whose session is gone. The next authenticated request
// for the profile starts a fresh one.
func (m *monitorRegistry) drop(profileID string, monitor *sessions.Monitor) {
	m.mu.Lock()
	if m.monitors[profileID] == monitor {
		delete(m.monitors, profileID)
	}
	m.mu.Unlock()

	monitor.Stop()
}

func (m *monitorRegistry) navigate(profileID, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.navigations[profileID] = path
}

// TakeNavigation returns and forgets a navigation a monitor asked for.
func (m *monitorRegistry) TakeNavigation(profileID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path, ok := m.navigations[profileID]
	delete(m.navigations, profileID)
	return path, ok
}

// Stop cancels the profile's monitor, if any.
func (m *monitorRegistry) Stop(profileID string) {
	m.mu.Lock()
	monitor, ok := m.monitors[profileID]
	delete(m.monitors, profileID)
	m.mu.Unlock()

	if ok {
		monitor.Stop()
	}
}

func (m *monitorRegistry) StopAll() {
	m.mu.Lock()
	monitors := m.monitors
	m.monitors = make(map[string]*sessions.Monitor)
	m.mu.Unlock()

	for _, monitor := range monitors {
		monitor.Stop()
	}
}

// Watching reports whether the profile has a running monitor.
func (m *monitorRegistry) Watching(profileID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	monitor, ok := m.monitors[profileID]
	return ok && monitor.Watching()
}
