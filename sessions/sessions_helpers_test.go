package sessions_test

import (
	"sync"
	"time"

	"github.com/uvenla/home-admin/sessions"
	"github.com/uvenla/home-admin/users"
)

const testProfile = "profile-1"

var epoch = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func staffSession(expiresAt int64) sessions.Session {
	return sessions.Session{
		User: users.User{
			ID:    "u-staff",
			Name:  "Nguyen Lan",
			Email: "lan@uvenla.vn",
			Role:  users.RoleStaff,
		},
		AccessToken: "header.payload.signature",
		ExpiresAt:   expiresAt,
	}
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
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

// manualScheduler runs scheduled jobs only when Tick is called.
type manualScheduler struct {
	mu     sync.Mutex
	nextID int
	jobs   map[int]func()
	every  []time.Duration
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{jobs: make(map[int]func())}
}

func (s *manualScheduler) Every(interval time.Duration, job func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.jobs[id] = job
	s.every = append(s.every, interval)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.jobs, id)
	}
}

// Tick runs every registered job once.
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
