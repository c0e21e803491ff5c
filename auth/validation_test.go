package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uvenla/home-admin/auth"
	apperrors "github.com/uvenla/home-admin/internal/errors"
)

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name  string
		creds auth.Credentials
		want  error
	}{
		{"both present", auth.Credentials{Email: "lan@uvenla.vn", Password: "x"}, nil},
		{"email only blank", auth.Credentials{Email: " \t", Password: "x"}, auth.ErrMissingEmail},
		{"password missing", auth.Credentials{Email: "lan@uvenla.vn"}, auth.ErrMissingPassword},
		{"both missing reports email", auth.Credentials{}, auth.ErrMissingEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Normalise().Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, apperrors.ErrMissingCredentials)
		})
	}
}

func TestCredentials_NormaliseKeepsPassword(t *testing.T) {
	got := auth.Credentials{Email: "  lan@uvenla.vn ", Password: " pass "}.Normalise()
	require.Equal(t, auth.Credentials{Email: "lan@uvenla.vn", Password: " pass "}, got)
}
