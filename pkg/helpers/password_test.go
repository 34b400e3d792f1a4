package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_NeverPlaintext(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	require.NotEqual(t, "Sup3rSecret", hash)
	require.True(t, CompareHashAndPassword(hash, "Sup3rSecret"))
	require.False(t, CompareHashAndPassword(hash, "sup3rsecret"))
}

func TestIsStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"Abcdef12":  true,
		"short1A":   false, // under 8 chars
		"alllower1": false, // no uppercase
		"ALLUPPER1": false, // no lowercase
		"NoDigitsX": false,
	}
	for pwd, want := range cases {
		require.Equal(t, want, IsStrongPassword(pwd), pwd)
	}
}
