package validators

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasMailbox(t *testing.T) {
	require.True(t, HasMailbox("juan@taller.local"))
	require.False(t, HasMailbox("juan"))
	require.False(t, HasMailbox("@taller.local"))
	require.False(t, HasMailbox("juan@"))
	require.False(t, HasMailbox(""))
}

func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	// Malformed addresses must fail before any DNS lookup happens.
	require.False(t, IsEmailDomainValid("sin-arroba"))
	require.False(t, IsEmailDomainValid("termina-en@"))
}
