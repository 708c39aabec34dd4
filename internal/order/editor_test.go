package order

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"stallpos/internal/store"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewLedger(s)
}

func seedDay(t *testing.T, l *Ledger, date string, orders ...Order) {
	t.Helper()
	for _, o := range orders {
		require.NoError(t, l.Append(date, o))
	}
}

func sampleOrder(id string) Order {
	items := []Line{
		{Name: "Masala Dosa", Price: 70, Qty: 1, LineTotal: 70},
		{Name: "Chai", Price: 10, Qty: 2, LineTotal: 20},
	}
	return Order{OrderID: id, CreatedAtMillis: 1740821400000, Items: items, Total: SumLines(items)}
}

func TestDayTolerantOfCorruptRecord(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Set("orders_2025-03-01", "not json at all"))

	l := NewLedger(s)
	orders, err := l.Day("2025-03-01")
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestEditOrderRecomputesTotals(t *testing.T) {
	l := newTestLedger(t)
	seedDay(t, l, "2025-03-01", sampleOrder("a"))

	edited, err := l.EditOrder("2025-03-01", 0, []LineEdit{
		{Name: "Masala Dosa", Qty: 2, Price: 65},
		{Name: "Chai", Qty: 2, Price: 10},
	})
	require.NoError(t, err)
	require.Equal(t, 150.0, edited.Total)
	require.Equal(t, 130.0, edited.Items[0].LineTotal)

	// The edit is persisted.
	orders, err := l.Day("2025-03-01")
	require.NoError(t, err)
	require.Equal(t, 150.0, orders[0].Total)
}

func TestEditOrderQtyZeroDropsLine(t *testing.T) {
	l := newTestLedger(t)
	seedDay(t, l, "2025-03-01", sampleOrder("a"))

	edited, err := l.EditOrder("2025-03-01", 0, []LineEdit{
		{Name: "Masala Dosa", Qty: 0, Price: 70},
		{Name: "Chai", Qty: 2, Price: 10},
	})
	require.NoError(t, err)
	require.Len(t, edited.Items, 1)
	require.Equal(t, "Chai", edited.Items[0].Name)
	require.Equal(t, 20.0, edited.Total, "total excludes the dropped line")
}

func TestEditOrderOutOfRange(t *testing.T) {
	l := newTestLedger(t)
	seedDay(t, l, "2025-03-01", sampleOrder("a"))

	_, err := l.EditOrder("2025-03-01", 5, nil)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = l.EditOrder("2025-03-01", -1, nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteOrderShiftsIndices(t *testing.T) {
	l := newTestLedger(t)
	seedDay(t, l, "2025-03-01", sampleOrder("a"), sampleOrder("b"), sampleOrder("c"))

	require.NoError(t, l.DeleteOrder("2025-03-01", 1))

	orders, err := l.Day("2025-03-01")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, "a", orders[0].OrderID)
	require.Equal(t, "c", orders[1].OrderID)
}

func TestDeleteOrderOutOfRange(t *testing.T) {
	l := newTestLedger(t)
	require.ErrorIs(t, l.DeleteOrder("2025-03-01", 0), ErrNotFound)
}

func TestDaysAreIndependent(t *testing.T) {
	l := newTestLedger(t)
	seedDay(t, l, "2025-03-01", sampleOrder("a"))
	seedDay(t, l, "2025-03-02", sampleOrder("b"))

	require.NoError(t, l.DeleteOrder("2025-03-01", 0))

	next, err := l.Day("2025-03-02")
	require.NoError(t, err)
	require.Len(t, next, 1)
	require.Equal(t, "b", next[0].OrderID)
}
