package sessions

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	apperrors "github.com/uvenla/home-admin/internal/errors"
)

const lockStripes = 64

// Manager hands out profile-bound Stores over a single Repo. Every Store of
// the same profile shares one lock stripe, so a check-then-clear by the expiry
// monitor cannot interleave with a sign-in writing a fresh session.
type Manager struct {
	repo  Repo
	locks [lockStripes]sync.Mutex
}

func NewManager(repo Repo) *Manager {
	return &Manager{repo: repo}
}

// Store returns the SessionStore of one browser profile.
func (m *Manager) Store(profileID string) *Store {
	return &Store{manager: m, profileID: profileID}
}

func (m *Manager) lockFor(profileID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(profileID))
	return &m.locks[h.Sum32()%lockStripes]
}

// Store is the persisted session of a single browser profile.
type Store struct {
	manager   *Manager
	profileID string
}

func (s *Store) ProfileID() string {
	return s.profileID
}

// Save persists the session, replacing whatever the profile held before.
func (s *Store) Save(ctx context.Context, session Session) error {
	record, err := Encode(session)
	if err != nil {
		return err
	}

	mu := s.manager.lockFor(s.profileID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.manager.repo.Put(ctx, s.profileID, record); err != nil {
		return fmt.Errorf("[sessions Save] profile %s: %w", s.profileID, err)
	}
	return nil
}

// Load returns the persisted session, if any. It does not check expiry.
// Storage failures and malformed records are logged and reported as absent.
func (s *Store) Load(ctx context.Context) (Session, bool) {
	mu := s.manager.lockFor(s.profileID)
	mu.Lock()
	defer mu.Unlock()

	return s.load(ctx)
}

// Clear removes the profile's session.
func (s *Store) Clear(ctx context.Context) error {
	mu := s.manager.lockFor(s.profileID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.manager.repo.Delete(ctx, s.profileID); err != nil {
		return fmt.Errorf("[sessions Clear] profile %s: %w", s.profileID, err)
	}
	return nil
}

// ClearIfExpired removes the session when it is expired at now and returns the
// removed session. The read and the delete happen under the profile lock.
func (s *Store) ClearIfExpired(ctx context.Context, now time.Time) (Session, bool) {
	session, outcome := s.expire(ctx, now)
	return session, outcome == outcomeCleared
}

type expiryOutcome int

const (
	outcomeLive expiryOutcome = iota
	outcomeMissing
	outcomeCleared
)

func (s *Store) expire(ctx context.Context, now time.Time) (Session, expiryOutcome) {
	mu := s.manager.lockFor(s.profileID)
	mu.Lock()
	defer mu.Unlock()

	session, ok := s.load(ctx)
	if !ok {
		return Session{}, outcomeMissing
	}
	if !session.Expired(now) {
		return Session{}, outcomeLive
	}
	if err := s.manager.repo.Delete(ctx, s.profileID); err != nil {
		log.Error().Err(err).Str("profile", s.profileID).Msg("failed to clear expired session")
		return Session{}, outcomeLive
	}
	return session, outcomeCleared
}

func (s *Store) load(ctx context.Context) (session Session, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("profile", s.profileID).Msg("session repo panicked on read")
			session, ok = Session{}, false
		}
	}()

	if s.profileID == "" {
		return Session{}, false
	}

	record, err := s.manager.repo.Get(ctx, s.profileID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrSessionNotFound) {
			log.Warn().Err(err).Str("profile", s.profileID).Msg("session read failed")
		}
		return Session{}, false
	}

	session, err = Decode(record)
	if err != nil {
		log.Warn().Err(err).Str("profile", s.profileID).Msg("ignoring stored session")
		return Session{}, false
	}
	return session, true
}
