// internal/cart/handlers.go
package cart

import (
	"net/http"

	"stallpos/internal/httpapi"
	"stallpos/internal/logger"
	"stallpos/internal/menu"
)

// Handlers exposes the till cart over HTTP. The cart is priced against
// the live catalog on every read.
type Handlers struct {
	Cart    *Cart
	Catalog *menu.Catalog
}

type cartView struct {
	Lines    []Line  `json:"lines"`
	Subtotal float64 `json:"subtotal"`
}

func (h *Handlers) view() cartView {
	lines := h.Cart.Lines(h.Catalog)
	var subtotal float64
	for _, l := range lines {
		subtotal += l.LineTotal
	}
	return cartView{Lines: lines, Subtotal: subtotal}
}

// Get returns the current cart lines and live subtotal.
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	logger.LogHTTPRequest(r)
	httpapi.WriteAPISuccess(w, r, h.view())
}

// AddOne increments the quantity of one menu item.
func (h *Handlers) AddOne(w http.ResponseWriter, r *http.Request) {
	logger.LogHTTPRequest(r)

	var req struct {
		ItemID string `json:"itemId"`
	}
	if err := httpapi.ParseJSONRequest(r, &req); err != nil {
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}
	if _, ok := h.Catalog.Get(req.ItemID); !ok {
		httpapi.WriteAPIError(w, r, http.StatusNotFound, "item_not_found", "Menu item not found", "")
		return
	}

	h.Cart.AddOne(req.ItemID)
	httpapi.WriteAPISuccess(w, r, h.view())
}

// SetQty sets an exact quantity for one line; zero removes it.
func (h *Handlers) SetQty(w http.ResponseWriter, r *http.Request) {
	logger.LogHTTPRequest(r)

	var req struct {
		Qty int `json:"qty"`
	}
	if err := httpapi.ParseJSONRequest(r, &req); err != nil {
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}

	h.Cart.SetQty(r.PathValue("id"), req.Qty)
	httpapi.WriteAPISuccess(w, r, h.view())
}

// Remove drops one line from the cart.
func (h *Handlers) Remove(w http.ResponseWriter, r *http.Request) {
	logger.LogHTTPRequest(r)
	h.Cart.Remove(r.PathValue("id"))
	httpapi.WriteAPISuccess(w, r, h.view())
}

// Clear empties the cart.
func (h *Handlers) Clear(w http.ResponseWriter, r *http.Request) {
	logger.LogHTTPRequest(r)
	h.Cart.Clear()
	httpapi.WriteAPISuccess(w, r, h.view())
}
