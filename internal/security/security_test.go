package security

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"stallpos/internal/store"
)

func newTestGate(t *testing.T) *Gate {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewGate(s)
}

func TestConfirmWithoutPinConfigured(t *testing.T) {
	g := newTestGate(t)

	require.False(t, g.Enabled())
	require.NoError(t, g.Confirm(""))
	require.NoError(t, g.Confirm("anything"))
}

func TestConfirmExactMatch(t *testing.T) {
	g := newTestGate(t)
	require.NoError(t, g.Set("4321"))

	require.True(t, g.Enabled())
	require.NoError(t, g.Confirm("4321"))

	err := g.Confirm("1234")
	require.ErrorIs(t, err, ErrPinMismatch)

	// Comparison is exact string equality, no trimming.
	require.ErrorIs(t, g.Confirm(" 4321"), ErrPinMismatch)
}

func TestSetEmptyClearsPin(t *testing.T) {
	g := newTestGate(t)
	require.NoError(t, g.Set("9999"))
	require.NoError(t, g.Set(""))

	require.False(t, g.Enabled())
	require.NoError(t, g.Confirm("whatever"))
}

func TestClear(t *testing.T) {
	g := newTestGate(t)
	require.NoError(t, g.Set("9999"))
	require.NoError(t, g.Clear())
	require.False(t, g.Enabled())
}
