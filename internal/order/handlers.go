// internal/order/handlers.go
package order

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"stallpos/internal/httpapi"
	"stallpos/internal/logger"
)

// Handlers exposes order submission and the day editor over HTTP.
type Handlers struct {
	Service *Service
	Ledger  *Ledger
}

type submitResponse struct {
	Order  Order      `json:"order"`
	Status SyncStatus `json:"status"`
}

// Submit finalizes the till cart as an order.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	logger.LogHTTPRequest(r)

	o, status, err := h.Service.Submit(r.Context())
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			httpapi.WriteAPIError(w, r, http.StatusBadRequest, "empty_cart", "Add items to the cart first.", "")
			return
		}
		logger.LogHTTPError(r, http.StatusInternalServerError, err)
		httpapi.WriteAPIError(w, r, http.StatusInternalServerError, "internal_error", "Failed to save order", "")
		return
	}

	httpapi.WriteAPISuccess(w, r, submitResponse{Order: o, Status: status})
}

// Day returns the ledger for one date, for the editor view.
func (h *Handlers) Day(w http.ResponseWriter, r *http.Request) {
	logger.LogHTTPRequest(r)

	date, ok := requireDate(w, r)
	if !ok {
		return
	}

	orders, err := h.Ledger.Day(date)
	if err != nil {
		logger.LogHTTPError(r, http.StatusInternalServerError, err)
		httpapi.WriteAPIError(w, r, http.StatusInternalServerError, "internal_error", "Failed to load orders", "")
		return
	}
	httpapi.WriteAPISuccess(w, r, orders)
}

// Edit replaces the lines of one order in a day's ledger.
func (h *Handlers) Edit(w http.ResponseWriter, r *http.Request) {
	logger.LogHTTPRequest(r)

	date, index, ok := pathDateIndex(w, r)
	if !ok {
		return
	}

	var req struct {
		Items []LineEdit `json:"items"`
	}
	if err := httpapi.ParseJSONRequest(r, &req); err != nil {
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}

	edited, err := h.Ledger.EditOrder(date, index, req.Items)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	httpapi.WriteAPISuccess(w, r, edited)
}

// Delete removes one order from a day's ledger.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	logger.LogHTTPRequest(r)

	date, index, ok := pathDateIndex(w, r)
	if !ok {
		return
	}

	if err := h.Ledger.DeleteOrder(date, index); err != nil {
		writeLedgerError(w, r, err)
		return
	}
	httpapi.WriteAPISuccess(w, r, map[string]interface{}{"date": date, "deleted": index})
}

func writeLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrNotFound) {
		httpapi.WriteAPIError(w, r, http.StatusNotFound, "order_not_found", "No such order for that date", "")
		return
	}
	logger.LogHTTPError(r, http.StatusInternalServerError, err)
	httpapi.WriteAPIError(w, r, http.StatusInternalServerError, "internal_error", "Failed to update orders", "")
}

// requireDate reads and validates the date query parameter, defaulting to
// today (UTC) when absent, matching the original date pickers.
func requireDate(w http.ResponseWriter, r *http.Request) (string, bool) {
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

func pathDateIndex(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	date := r.PathValue("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, "invalid_date", "Date must be YYYY-MM-DD", err.Error())
		return "", 0, false
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, "invalid_index", "Order index must be an integer", err.Error())
		return "", 0, false
	}
	return date, index, true
}
