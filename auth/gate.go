package auth

import (
	"context"
	"time"

	apperrors "github.com/uvenla/home-admin/internal/errors"
	"github.com/uvenla/home-admin/sessions"
)

// SessionStore is the profile-bound session storage the gate and the
// sign-in flows work against.
type SessionStore interface {
	Save(ctx context.Context, session sessions.Session) error
	Load(ctx context.Context) (sessions.Session, bool)
	Clear(ctx context.Context) error
}

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Decision is the gate's verdict for one navigation into the admin area.
// Reason explains an Unauthenticated verdict: ErrSessionNotFound,
// ErrSessionExpired or ErrUnauthorizedRole.
type Decision struct {
	State   State
	Session sessions.Session
	Reason  error
}

func (d Decision) Authenticated() bool {
	return d.State == Authenticated
}

// Gate decides whether the protected area may render.
type Gate struct {
	nowTime func() time.Time
}

func NewGate(nowTime func() time.Time) *Gate {
	if nowTime == nil {
		nowTime = time.Now
	}
	return &Gate{nowTime: nowTime}
}

// Evaluate reads the store once and decides. It has no side effects: clearing
// an expired session is left to the caller or the expiry monitor.
func (g *Gate) Evaluate(ctx context.Context, store SessionStore) Decision {
	session, ok := store.Load(ctx)
	if !ok {
		return Decision{State: Unauthenticated, Reason: apperrors.ErrSessionNotFound}
	}
	if session.Expired(g.nowTime()) {
		return Decision{State: Unauthenticated, Session: session, Reason: apperrors.ErrSessionExpired}
	}
	if !session.User.Role.AdminArea() {
		return Decision{State: Unauthenticated, Session: session, Reason: apperrors.ErrUnauthorizedRole}
	}
	return Decision{State: Authenticated, Session: session}
}
