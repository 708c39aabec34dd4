// internal/order/editor.go
package order

import (
	"errors"
	"fmt"

	"stallpos/internal/logger"
)

// ErrNotFound means the order index does not exist in that day's ledger.
var ErrNotFound = errors.New("order not found")

// LineEdit is one surviving line of an edited order. Lines edited to qty
// zero (or dropped entirely) simply do not appear in the edit.
type LineEdit struct {
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

// EditOrder replaces the lines of one order in a day's ledger, recomputing
// each line total and the order total, and persists the full day back.
// Edits are local-only: the remote sheet is deliberately not touched, so
// the spreadsheet keeps the order as originally submitted.
func (l *Ledger) EditOrder(date string, index int, edits []LineEdit) (Order, error) {
	orders, err := l.Day(date)
	if err != nil {
		return Order{}, err
	}
	if index < 0 || index >= len(orders) {
		return Order{}, fmt.Errorf("%w: %s[%d]", ErrNotFound, date, index)
	}

	var lines []Line
	for _, e := range edits {
		if e.Qty <= 0 {
			continue
		}
		lines = append(lines, Line{
			Name:      e.Name,
			Price:     e.Price,
			Qty:       e.Qty,
			LineTotal: e.Price * float64(e.Qty),
		})
	}

	orders[index].Items = lines
	orders[index].Total = SumLines(lines)

	if err := l.save(date, orders); err != nil {
		return Order{}, err
	}
	logger.LogInfo("Order %s edited locally (sheet not modified)", orders[index].OrderID)
	return orders[index], nil
}

// DeleteOrder removes one order from a day's ledger. Local-only, same as
// EditOrder; subsequent orders shift down one index.
func (l *Ledger) DeleteOrder(date string, index int) error {
	orders, err := l.Day(date)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(orders) {
		return fmt.Errorf("%w: %s[%d]", ErrNotFound, date, index)
	}

	removed := orders[index]
	orders = append(orders[:index], orders[index+1:]...)

	if err := l.save(date, orders); err != nil {
		return err
	}
	logger.LogInfo("Order %s deleted locally (sheet not modified)", removed.OrderID)
	return nil
}
