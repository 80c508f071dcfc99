package portalloc

import (
	"context"
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_OverrideIsVerbatim(t *testing.T) {
	t.Parallel()

	testCases := []string{"9999", "not-a-port"}

	for _, override := range testCases {
		// An override is returned verbatim, even if it is not a usable port.
		r, err := Resolve(context.Background(), "", override)

		require.NoError(t, err)
		assert.Equal(t, override, r.Port())
		assert.False(t, r.Assigned())
		assert.NoError(t, r.Release())
	}
}

func TestResolve_AssignedPortIsFreeAfterRelease(t *testing.T) {
	t.Parallel()

	r, err := Resolve(context.Background(), "", "")
	require.NoError(t, err)
	assert.True(t, r.Assigned())
	port, err := strconv.Atoi(r.Port())
	require.NoError(t, err)
	require.Positive(t, port)

	require.NoError(t, r.Release())

	// The socket is closed, so the port can be bound again.
	l, err := net.Listen("tcp", net.JoinHostPort("", r.Port()))
	require.NoError(t, err)
	require.NoError(t, l.Close())
}

func TestResolve_HoldsPortUntilRelease(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r, err := Resolve(context.Background(), "127.0.0.1", "")
	require.NoError(t, err)
	addr := net.JoinHostPort("127.0.0.1", r.Port())

	// --- Act / Assert ---
	_, err = net.Listen("tcp", addr)
	require.Error(t, err, "port must stay bound while reserved")

	require.NoError(t, r.Release())
	require.NoError(t, r.Release(), "release is idempotent")

	l, err := net.Listen("tcp", addr)
	require.NoError(t, err)
	require.NoError(t, l.Close())
}
