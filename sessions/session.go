package sessions

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/uvenla/home-admin/internal/errors"
	"github.com/uvenla/home-admin/users"
)

// Session is the signed-in state of one browser profile: the user record
// returned by the backend, the bearer token used for every data call and the
// token's expiry.
type Session struct {
	User         users.User `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken,omitempty"`
	ExpiresAt    int64      `json:"expiresAt,omitempty"` // Epoch seconds, 0 when the token carries no expiry
}

// Expired reports whether the access token is past its expiry at now.
// A session without an expiry never expires.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt != 0 && now.Unix() >= s.ExpiresAt
}

// Valid reports whether the session may be used to enter the admin area at now.
func (s Session) Valid(now time.Time) bool {
	return s.AccessToken != "" && s.User.Role.AdminArea() && !s.Expired(now)
}

// ExpiryTime returns ExpiresAt as a time, or the zero time when absent.
func (s Session) ExpiryTime() time.Time {
	if s.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(s.ExpiresAt, 0)
}

// Encode serialises the session into its persisted record.
func Encode(s Session) ([]byte, error) {
	record, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("[sessions Encode] %w", err)
	}
	return record, nil
}

// Decode parses a persisted record. Records that are not JSON, lack an access
// token or carry an unrecognised role are reported as ErrMalformedSession.
func Decode(record []byte) (Session, error) {
	var s Session
	if err := json.Unmarshal(record, &s); err != nil {
		return Session{}, apperrors.Wrapf(apperrors.ErrMalformedSession, "decode: %s", err.Error())
	}
	if strings.TrimSpace(s.AccessToken) == "" {
		return Session{}, apperrors.Wrapf(apperrors.ErrMalformedSession, "missing access token")
	}
	role, ok := users.ParseRole(string(s.User.Role))
	if !ok {
		return Session{}, apperrors.Wrapf(apperrors.ErrMalformedSession, "unknown role %q", s.User.Role)
	}
	s.User.Role = role
	if s.ExpiresAt < 0 {
		return Session{}, apperrors.Wrapf(apperrors.ErrMalformedSession, "negative expiry")
	}
	return s, nil
}
