// internal/sales/handlers.go
package sales

import (
	"fmt"
	"net/http"
	"time"

	"stallpos/internal/httpapi"
	"stallpos/internal/logger"
	"stallpos/internal/order"
)

// Handlers exposes the read-only daily sales views.
type Handlers struct {
	Ledger *order.Ledger
}

// Summary returns the aggregated totals for one date.
func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	logger.LogHTTPRequest(r)

	date, ok := parseDate(w, r)
	if !ok {
		return
	}

	orders, err := h.Ledger.Day(date)
	if err != nil {
		logger.LogHTTPError(r, http.StatusInternalServerError, err)
		httpapi.WriteAPIError(w, r, http.StatusInternalServerError, "internal_error", "Failed to load sales", "")
		return
	}
	httpapi.WriteAPISuccess(w, r, Aggregate(date, orders))
}

// ExportCSV streams one date's ledger as a CSV download.
func (h *Handlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	logger.LogHTTPRequest(r)

	date, ok := parseDate(w, r)
	if !ok {
		return
	}

	orders, err := h.Ledger.Day(date)
	if err != nil {
		logger.LogHTTPError(r, http.StatusInternalServerError, err)
		httpapi.WriteAPIError(w, r, http.StatusInternalServerError, "internal_error", "Failed to load sales", "")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=sales_%s.csv", date))
	if err := WriteCSV(w, orders); err != nil {
		logger.LogHTTPError(r, http.StatusInternalServerError, err)
	}
}

func parseDate(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := r.URL.Query().Get("date")
	if date == "" {
		return time.Now().UTC().Format("2006-01-02"), true
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, "invalid_date", "Date must be YYYY-MM-DD", err.Error())
		return "", false
	}
	return date, true
}
