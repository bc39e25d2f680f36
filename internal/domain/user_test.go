package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("admin")
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, role)

	role, err = ParseRole("user")
	require.NoError(t, err)
	require.Equal(t, RoleUser, role)

	for _, raw := range []string{"", "Admin", "captain", "superuser"} {
		_, err := ParseRole(raw)
		require.Error(t, err, raw)
	}
}
