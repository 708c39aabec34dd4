// internal/order/order.go
package order

import (
	"encoding/json"
	"fmt"
	"time"

	"stallpos/internal/logger"
	"stallpos/internal/store"
)

// Line is one snapshotted entry of a finalized order. Name and price are
// copied from the catalog at submission time and stay fixed afterwards;
// later menu edits never rewrite history. The item id is only meaningful
// at creation time and is dropped from edited lines.
type Line struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
	LineTotal float64 `json:"lineTotal"`
}

// Order is one finalized sale. Total always equals the sum of the line
// totals; anything that touches the lines recomputes it.
type Order struct {
	OrderID         string  `json:"orderId"`
	CreatedAtMillis int64   `json:"createdAtMillis"`
	Items           []Line  `json:"items"`
	Total           float64 `json:"total"`
}

// SumLines recomputes the order total from its lines.
func SumLines(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		total += l.LineTotal
	}
	return total
}

const ledgerKeyPrefix = "orders_"

// DateOf truncates a millisecond timestamp to its UTC calendar day,
// which keys the ledger the order lands in.
func DateOf(millis int64) string {
	return time.UnixMilli(millis).UTC().Format("2006-01-02")
}

// Ledger stores one ordered list of orders per calendar day. Days are
// independent records and are never merged.
type Ledger struct {
	store *store.Store
}

func NewLedger(s *store.Store) *Ledger {
	return &Ledger{store: s}
}

func ledgerKey(date string) string {
	return ledgerKeyPrefix + date
}

// Day loads the orders recorded for one date (YYYY-MM-DD), in submission
// order. Absent or malformed stored text yields an empty day.
func (l *Ledger) Day(date string) ([]Order, error) {
	raw, ok, err := l.store.Get(ledgerKey(date))
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger for %s: %w", date, err)
	}
	if !ok {
		return []Order{}, nil
	}

	var orders []Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		logger.LogWarn("Corrupt ledger record for %s, treating as empty: %v", date, err)
		return []Order{}, nil
	}
	return orders, nil
}

// save persists the full day back under its ledger key.
func (l *Ledger) save(date string, orders []Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger for %s: %w", date, err)
	}
	if err := l.store.Set(ledgerKey(date), string(data)); err != nil {
		return fmt.Errorf("failed to persist ledger for %s: %w", date, err)
	}
	return nil
}

// Append adds an order to the end of its day's ledger.
func (l *Ledger) Append(date string, o Order) error {
	orders, err := l.Day(date)
	if err != nil {
		return err
	}
	return l.save(date, append(orders, o))
}
