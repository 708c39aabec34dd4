package menu

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"stallpos/internal/security"
	"stallpos/internal/store"
)

func allowAll(string) error { return nil }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadSeedsDefaultMenu(t *testing.T) {
	s := newTestStore(t)

	c, err := Load(s, allowAll)
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 3)
	require.Equal(t, "Masala Dosa", items[0].Name)
	require.Equal(t, 70.0, items[0].Price)
	require.Equal(t, "Chai", items[2].Name)

	// The seed is persisted back so the fallback is durable.
	raw, ok, err := s.Get("menu_items")
	require.NoError(t, err)
	require.True(t, ok)
	var stored []Item
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	require.Equal(t, items, stored)
}

func TestLoadRecoversFromCorruptRecord(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Set("menu_items", "{not json"))

	c, err := Load(s, allowAll)
	require.NoError(t, err)
	require.Len(t, c.Items(), 3)

	raw, _, err := s.Get("menu_items")
	require.NoError(t, err)
	var stored []Item
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
}

func TestReloadIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	_, err := Load(s, allowAll)
	require.NoError(t, err)
	before, _, err := s.Get("menu_items")
	require.NoError(t, err)

	// Reloading and re-marshaling without mutation yields the same text.
	c, err := Load(s, allowAll)
	require.NoError(t, err)
	again, err := json.Marshal(c.Items())
	require.NoError(t, err)
	require.Equal(t, before, string(again))
}

func TestAddAssignsFreshID(t *testing.T) {
	s := newTestStore(t)
	c, err := Load(s, allowAll)
	require.NoError(t, err)

	item, err := c.Add("Vada", 25, "")
	require.NoError(t, err)
	require.NotEmpty(t, item.ID)
	require.Equal(t, "Vada", item.Name)

	items := c.Items()
	require.Len(t, items, 4)
	require.Equal(t, item, items[3], "insertion order preserved")
}

func TestAddRejectsInvalidInput(t *testing.T) {
	s := newTestStore(t)
	c, err := Load(s, allowAll)
	require.NoError(t, err)
	before := len(c.Items())

	_, err = c.Add("", 10, "")
	require.ErrorIs(t, err, ErrValidation)

	_, err = c.Add("Tea", -1, "")
	require.ErrorIs(t, err, ErrValidation)

	require.Len(t, c.Items(), before, "catalog unchanged after rejected adds")
}

func TestUpdatePreservesID(t *testing.T) {
	s := newTestStore(t)
	c, err := Load(s, allowAll)
	require.NoError(t, err)
	id := c.Items()[2].ID

	require.NoError(t, c.Update(id, "Masala Chai", 12, "", ""))

	got, ok := c.Get(id)
	require.True(t, ok)
	require.Equal(t, "Masala Chai", got.Name)
	require.Equal(t, 12.0, got.Price)
}

func TestUpdateUnknownID(t *testing.T) {
	s := newTestStore(t)
	c, err := Load(s, allowAll)
	require.NoError(t, err)

	require.ErrorIs(t, c.Update("nope", "X", 1, "", ""), ErrNotFound)
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	c, err := Load(s, allowAll)
	require.NoError(t, err)
	id := c.Items()[0].ID

	require.NoError(t, c.Remove(id, ""))
	require.Len(t, c.Items(), 2)
	_, ok := c.Get(id)
	require.False(t, ok)
}

func TestPinGatesEditAndDelete(t *testing.T) {
	s := newTestStore(t)
	gate := security.NewGate(s)
	require.NoError(t, gate.Set("1234"))

	c, err := Load(s, gate.Confirmer())
	require.NoError(t, err)
	id := c.Items()[0].ID

	require.ErrorIs(t, c.Update(id, "Hacked", 1, "", "wrong"), security.ErrPinMismatch)
	require.ErrorIs(t, c.Remove(id, "wrong"), security.ErrPinMismatch)

	got, ok := c.Get(id)
	require.True(t, ok)
	require.Equal(t, "Masala Dosa", got.Name, "catalog untouched after PIN mismatch")

	require.NoError(t, c.Update(id, "Paper Dosa", 80, "", "1234"))
	require.NoError(t, c.Remove(id, "1234"))
}

func TestAddIsNotGated(t *testing.T) {
	s := newTestStore(t)
	gate := security.NewGate(s)
	require.NoError(t, gate.Set("1234"))

	c, err := Load(s, gate.Confirmer())
	require.NoError(t, err)

	_, err = c.Add("Filter Coffee", 15, "")
	require.NoError(t, err)
}
