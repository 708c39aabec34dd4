// internal/sales/sales.go
package sales

import (
	"sort"

	"stallpos/internal/order"
)

// ItemTotal is one reporting row: every line with the same name across the
// day is merged, regardless of the price it was sold at. Aggregation keys
// on the snapshotted name, not the item id, so renamed or deleted menu
// items still report under what the receipt said.
type ItemTotal struct {
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Sales float64 `json:"sales"`
}

// Summary is the derived view of one day's ledger.
type Summary struct {
	Date       string      `json:"date"`
	GrandTotal float64     `json:"grandTotal"`
	TotalQty   int         `json:"totalQty"`
	PerItem    []ItemTotal `json:"perItem"`
}

// Aggregate derives per-item and grand totals from a day's orders. Pure
// function of the ledger; rows sort descending by sales, first-seen order
// breaking ties.
func Aggregate(date string, orders []order.Order) Summary {
	s := Summary{Date: date, PerItem: []ItemTotal{}}

	index := make(map[string]int)
	for _, o := range orders {
		s.GrandTotal += o.Total
		for _, line := range o.Items {
			s.TotalQty += line.Qty
			i, ok := index[line.Name]
			if !ok {
				i = len(s.PerItem)
				index[line.Name] = i
				s.PerItem = append(s.PerItem, ItemTotal{Name: line.Name})
			}
			s.PerItem[i].Qty += line.Qty
			s.PerItem[i].Sales += line.LineTotal
		}
	}

	sort.SliceStable(s.PerItem, func(a, b int) bool {
		return s.PerItem[a].Sales > s.PerItem[b].Sales
	})
	return s
}
