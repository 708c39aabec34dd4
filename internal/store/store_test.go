package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetAbsentKey(t *testing.T) {
	s := openTestStore(t)

	value, ok, err := s.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, value)
}

func TestSetGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("menu_items", `[{"id":"a","name":"Chai","price":10}]`))

	value, ok, err := s.Get("menu_items")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":"a","name":"Chai","price":10}]`, value)
}

func TestSetOverwrites(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("orders_2025-03-01", "[]"))
	require.NoError(t, s.Set("orders_2025-03-01", `[{"orderId":"x"}]`))

	value, ok, err := s.Get("orders_2025-03-01")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"orderId":"x"}]`, value)
}

func TestKeysAreIndependent(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("orders_2025-03-01", "[1]"))
	require.NoError(t, s.Set("orders_2025-03-02", "[2]"))

	v1, _, err := s.Get("orders_2025-03-01")
	require.NoError(t, err)
	v2, _, err := s.Get("orders_2025-03-02")
	require.NoError(t, err)
	require.Equal(t, "[1]", v1)
	require.Equal(t, "[2]", v2)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("manager_pin", "1234"))
	require.NoError(t, s.Delete("manager_pin"))

	_, ok, err := s.Get("manager_pin")
	require.NoError(t, err)
	require.False(t, ok)

	// Deleting an absent key is fine.
	require.NoError(t, s.Delete("manager_pin"))
}
