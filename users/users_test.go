package users_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uvenla/home-admin/users"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want users.RoleType
		ok   bool
	}{
		{"admin", users.RoleAdmin, true},
		{" Manager ", users.RoleManager, true},
		{"STAFF", users.RoleStaff, true},
		{"customer", users.RoleCustomer, true},
		{"", "", false},
		{"root", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := users.ParseRole(tt.in)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRoleType_AdminArea(t *testing.T) {
	require.True(t, users.RoleAdmin.AdminArea())
	require.True(t, users.RoleManager.AdminArea())
	require.True(t, users.RoleStaff.AdminArea())
	require.False(t, users.RoleCustomer.AdminArea())
	require.False(t, users.RoleType("").AdminArea())
	require.False(t, users.RoleType("auditor").AdminArea())
}

func TestUser_UnmarshalJSON(t *testing.T) {
	t.Run("mongo id", func(t *testing.T) {
		var u users.User
		err := json.Unmarshal([]byte(`{"_id":"66a1","name":"Lan","email":"lan@uvenla.vn","role":"staff"}`), &u)
		require.NoError(t, err)
		require.Equal(t, "66a1", u.ID)
		require.Equal(t, users.RoleStaff, u.Role)
	})

	t.Run("plain id wins", func(t *testing.T) {
		var u users.User
		err := json.Unmarshal([]byte(`{"id":"u-1","_id":"66a1"}`), &u)
		require.NoError(t, err)
		require.Equal(t, "u-1", u.ID)
	})
}

func TestUser_DisplayName(t *testing.T) {
	require.Equal(t, "Lan", users.User{Name: " Lan ", Email: "lan@uvenla.vn"}.DisplayName())
	require.Equal(t, "lan@uvenla.vn", users.User{Email: "lan@uvenla.vn"}.DisplayName())
}
