package reporedis

import (
	"context"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"
	apperrors "github.com/uvenla/home-admin/internal/errors"
	"github.com/uvenla/home-admin/sessions"
)

// minTTL is the shortest lifetime given to any record.
const minTTL = time.Minute

// fallbackTTL applies to sessions whose token carries no expiry.
const fallbackTTL = 24 * time.Hour

// Repo stores session records in Redis, shared between front end instances.
// Records outlive their token by a grace period so the expiry monitor still
// sees them and reports the expiry.
type Repo struct {
	client *redislib.Client
	grace  time.Duration
	now    func() time.Time
}

var _ sessions.Repo = (*Repo)(nil)

type Option func(*Repo)

// WithGrace sets how long a record is kept past its token expiry. It should
// cover at least one monitor poll interval.
func WithGrace(d time.Duration) Option {
	return func(r *Repo) {
		if d > 0 {
			r.grace = d
		}
	}
}

func New(client *redislib.Client, opts ...Option) *Repo {
	r := &Repo{client: client, grace: 2 * sessions.DefaultPollInterval, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewClient creates a Redis client from a redis:// URL and performs a health check.
func NewClient(ctx context.Context, url string) (*redislib.Client, error) {
	opts, err := redislib.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("[reporedis NewClient] %w", err)
	}
	client := redislib.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[reporedis NewClient] ping: %w", err)
	}
	return client, nil
}

func (r *Repo) Get(ctx context.Context, profileID string) ([]byte, error) {
	record, err := r.client.Get(ctx, sessions.Key(profileID)).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, err
	}
	return record, nil
}

// Put stores the record with a TTL of the time left on the token plus the grace
// period, so Redis drops abandoned sessions on its own.
func (r *Repo) Put(ctx context.Context, profileID string, record []byte) error {
	return r.client.Set(ctx, sessions.Key(profileID), record, r.ttl(record)).Err()
}

func (r *Repo) Delete(ctx context.Context, profileID string) error {
	return r.client.Del(ctx, sessions.Key(profileID)).Err()
}

func (r *Repo) ttl(record []byte) time.Duration {
	s, err := sessions.Decode(record)
	if err != nil || s.ExpiresAt == 0 {
		return fallbackTTL
	}
	ttl := max(s.ExpiryTime().Sub(r.now()), 0) + r.grace
	return max(ttl, minTTL)
}
