package auth_test

import (
	"context"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/uvenla/home-admin/backend"
	"github.com/uvenla/home-admin/sessions"
	"github.com/uvenla/home-admin/users"
)

var epoch = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return epoch }

func mintToken(t *testing.T, exp int64) string {
	t.Helper()
	claims := jwtlib.MapClaims{"id": "u1"}
	if exp != 0 {
		claims["exp"] = exp
	}
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return raw
}

// fakeAuthenticator answers sign-in with a canned result or error.
type fakeAuthenticator struct {
	result *backend.SignInResult
	err    error
	calls  int
}

func (f *fakeAuthenticator) SignIn(_ context.Context, _, _ string) (*backend.SignInResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func signInResult(t *testing.T, role users.RoleType, exp int64) *backend.SignInResult {
	return &backend.SignInResult{
		User:         users.User{ID: "u1", Name: "Nguyen Lan", Email: "lan@uvenla.vn", Role: role},
		AccessToken:  mintToken(t, exp),
		RefreshToken: "refresh",
	}
}

func newStore() *sessions.Store {
	return sessions.NewManager(sessions.NewInMemoryRepo()).Store("profile-1")
}

type stopCounter struct{ stops int }

func (s *stopCounter) Stop() { s.stops++ }
