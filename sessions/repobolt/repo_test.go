package repobolt_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	apperrors "github.com/uvenla/home-admin/internal/errors"
	"github.com/uvenla/home-admin/sessions"
	"github.com/uvenla/home-admin/sessions/repobolt"
	"github.com/uvenla/home-admin/users"
)

func openRepo(t *testing.T, path string) *repobolt.Repo {
	t.Helper()
	repo, err := repobolt.Open(path)
	require.NoError(t, err)
	return repo
}

func TestRepo_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t, filepath.Join(t.TempDir(), "sessions.db"))
	defer repo.Close()

	_, err := repo.Get(ctx, "p1")
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	require.NoError(t, repo.Put(ctx, "p1", []byte(`{"a":1}`)))
	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1}`, string(got))

	require.NoError(t, repo.Delete(ctx, "p1"))
	_, err = repo.Get(ctx, "p1")
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestRepo_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "sessions.db")

	repo := openRepo(t, path)
	store := sessions.NewManager(repo).Store("p1")
	require.NoError(t, store.Save(ctx, sessions.Session{
		User:        users.User{Email: "admin@uvenla.vn", Role: users.RoleAdmin},
		AccessToken: "tok",
		ExpiresAt:   1893456000,
	}))
	require.NoError(t, repo.Close())

	reopened := openRepo(t, path)
	defer reopened.Close()

	got, ok := sessions.NewManager(reopened).Store("p1").Load(ctx)
	require.True(t, ok)
	require.Equal(t, "admin@uvenla.vn", got.User.Email)
	require.Equal(t, int64(1893456000), got.ExpiresAt)
}

func TestRepo_ClosedDatabase(t *testing.T) {
	var repo *repobolt.Repo
	_, err := repo.Get(context.Background(), "p1")
	require.Error(t, err)
	require.NoError(t, repo.Close())
}
