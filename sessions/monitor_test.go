package sessions_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uvenla/home-admin/sessions"
)

type monitorFixture struct {
	clock     *fakeClock
	scheduler *manualScheduler
	store     *sessions.Store
	monitor   *sessions.Monitor
	expired   []sessions.Session
	navigated []string
}

func newMonitorFixture(t *testing.T) *monitorFixture {
	t.Helper()

	f := &monitorFixture{
		clock:     newFakeClock(epoch),
		scheduler: newManualScheduler(),
		store:     sessions.NewManager(sessions.NewInMemoryRepo()).Store(testProfile),
	}
	f.monitor = sessions.NewMonitor(f.store, f.scheduler,
		sessions.WithClock(f.clock.Now),
		sessions.OnExpired(func(s sessions.Session) { f.expired = append(f.expired, s) }),
		sessions.OnNavigate(func(path string) { f.navigated = append(f.navigated, path) }),
	)
	return f
}

func (f *monitorFixture) save(t *testing.T, expiresAt int64) {
	t.Helper()
	require.NoError(t, f.store.Save(context.Background(), staffSession(expiresAt)))
}

func (f *monitorFixture) hasSession() bool {
	_, ok := f.store.Load(context.Background())
	return ok
}

func TestMonitor_StartChecksImmediately(t *testing.T) {
	f := newMonitorFixture(t)
	f.save(t, epoch.Unix()-1)

	f.monitor.Start(context.Background())

	require.True(t, f.monitor.Watching())
	require.False(t, f.hasSession())
	require.Len(t, f.expired, 1)
	require.Equal(t, []string{sessions.SignInPath}, f.navigated)
	require.Equal(t, []time.Duration{sessions.DefaultPollInterval}, f.scheduler.every)
}

func TestMonitor_ExpiredSessionNotifiesOnce(t *testing.T) {
	f := newMonitorFixture(t)
	f.save(t, epoch.Unix()+30)
	f.monitor.Start(context.Background())
	require.Empty(t, f.expired)

	f.clock.Advance(time.Minute)
	f.scheduler.Tick()
	f.scheduler.Tick()
	f.scheduler.Tick()

	require.False(t, f.hasSession())
	require.Len(t, f.expired, 1, "later ticks find nothing to clear")
	require.Len(t, f.navigated, 1)
}

func TestMonitor_LiveSessionSurvivesItsWindow(t *testing.T) {
	f := newMonitorFixture(t)
	f.save(t, epoch.Unix()+3600)
	f.monitor.Start(context.Background())

	for i := 0; i < 59; i++ {
		f.clock.Advance(time.Minute)
		f.scheduler.Tick()
	}

	require.True(t, f.hasSession())
	require.Empty(t, f.expired)
	require.Empty(t, f.navigated)
}

func TestMonitor_NoTickAfterStop(t *testing.T) {
	f := newMonitorFixture(t)
	f.save(t, epoch.Unix()+60)
	f.monitor.Start(context.Background())

	f.monitor.Stop()
	require.False(t, f.monitor.Watching())
	require.Equal(t, 0, f.scheduler.Jobs())

	f.clock.Advance(2 * time.Hour)
	f.scheduler.Tick()

	require.True(t, f.hasSession())
	require.Empty(t, f.expired)
}

func TestMonitor_DispatchedTickAfterStopIsIgnored(t *testing.T) {
	f := newMonitorFixture(t)
	f.save(t, epoch.Unix()+60)
	f.monitor.Start(context.Background())

	f.monitor.Stop()
	f.clock.Advance(2 * time.Hour)

	// A scheduler run that was already in flight when Stop was called
	require.False(t, f.monitor.Check(context.Background()))
	require.True(t, f.hasSession())
}

func TestMonitor_ReadsStoreFreshOnEveryTick(t *testing.T) {
	f := newMonitorFixture(t)
	f.save(t, epoch.Unix()+60)
	f.monitor.Start(context.Background())

	// A new sign-in replaces the session before the old expiry passes
	f.save(t, epoch.Unix()+7200)
	f.clock.Advance(5 * time.Minute)
	f.scheduler.Tick()

	require.True(t, f.hasSession())
	require.Empty(t, f.expired)
}

func TestMonitor_StartIsIdempotent(t *testing.T) {
	f := newMonitorFixture(t)
	f.monitor.Start(context.Background())
	f.monitor.Start(context.Background())
	require.Equal(t, 1, f.scheduler.Jobs())

	f.monitor.Stop()
	f.monitor.Stop()
	require.Equal(t, 0, f.scheduler.Jobs())

	f.monitor.Start(context.Background())
	require.Equal(t, 1, f.scheduler.Jobs())
}

func TestMonitor_CallbackMayStopMonitor(t *testing.T) {
	clock := newFakeClock(epoch)
	scheduler := newManualScheduler()
	store := sessions.NewManager(sessions.NewInMemoryRepo()).Store(testProfile)
	require.NoError(t, store.Save(context.Background(), staffSession(epoch.Unix()-1)))

	var monitor *sessions.Monitor
	monitor = sessions.NewMonitor(store, scheduler,
		sessions.WithClock(clock.Now),
		sessions.WithInterval(10*time.Second),
		sessions.OnExpired(func(sessions.Session) { monitor.Stop() }),
	)
	monitor.Start(context.Background())

	require.False(t, monitor.Watching())
	require.Equal(t, []time.Duration{10 * time.Second}, scheduler.every)
}

func TestCronScheduler_RunsAndCancels(t *testing.T) {
	s := sessions.NewCronScheduler()
	s.Start()
	defer s.Stop(context.Background())

	runs := make(chan struct{}, 10)
	cancel := s.Every(time.Second, func() { runs <- struct{}{} })

	select {
	case <-runs:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
	cancel()
}

func TestMonitor_MissingSessionIsReported(t *testing.T) {
	f := newMonitorFixture(t)
	missing := 0
	monitor := sessions.NewMonitor(f.store, f.scheduler,
		sessions.WithClock(f.clock.Now),
		sessions.OnExpired(func(s sessions.Session) { f.expired = append(f.expired, s) }),
		sessions.OnMissing(func() { missing++ }),
	)
	f.save(t, epoch.Unix()+3600)
	monitor.Start(context.Background())
	require.Zero(t, missing)

	require.NoError(t, f.store.Clear(context.Background()))
	f.scheduler.Tick()
	require.Equal(t, 1, missing)
	require.Empty(t, f.expired, "a vanished session is not an expiry")
	require.True(t, monitor.Watching(), "stopping is left to the handler")

	t.Run("handler may stop the monitor", func(t *testing.T) {
		var stopper *sessions.Monitor
		stopper = sessions.NewMonitor(f.store, f.scheduler,
			sessions.WithClock(f.clock.Now),
			sessions.OnMissing(func() { stopper.Stop() }),
		)
		stopper.Start(context.Background())
		require.False(t, stopper.Watching())
	})
}
