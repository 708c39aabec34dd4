// internal/sales/csv.go
package sales

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"stallpos/internal/order"
)

// WriteCSV writes a day's ledger as CSV, one row per order line:
// OrderID, Timestamp, Item, Qty, Price, LineTotal, TotalOrder. Every
// field is double-quoted with internal quotes doubled, which is the wire
// format the existing spreadsheet tooling imports. encoding/csv only
// quotes when forced to, so the quoting is done here.
func WriteCSV(w io.Writer, orders []order.Order) error {
	rows := [][]string{{"OrderID", "Timestamp", "Item", "Qty", "Price", "LineTotal", "TotalOrder"}}

	for _, o := range orders {
		ts := time.UnixMilli(o.CreatedAtMillis).UTC().Format("2006-01-02T15:04:05.000Z07:00")
		for _, line := range o.Items {
			rows = append(rows, []string{
				o.OrderID,
				ts,
				line.Name,
				strconv.Itoa(line.Qty),
				formatAmount(line.Price),
				formatAmount(line.LineTotal),
				formatAmount(o.Total),
			})
		}
	}

	for _, row := range rows {
		quoted := make([]string, len(row))
		for i, v := range row {
			quoted[i] = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
		}
		if _, err := fmt.Fprintln(w, strings.Join(quoted, ",")); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}

// formatAmount renders a decimal without trailing zero padding, so 10
// stays "10" and 10.5 stays "10.5".
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
