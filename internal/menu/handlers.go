// internal/menu/handlers.go
package menu

import (
	"errors"
	"net/http"

	"stallpos/internal/httpapi"
	"stallpos/internal/logger"
	"stallpos/internal/security"
)

// Handlers exposes the catalog over HTTP. Edit and delete read the PIN
// from the X-Manager-Pin header, standing in for the original prompt.
type Handlers struct {
	Catalog *Catalog
}

type itemRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	logger.LogHTTPRequest(r)
	httpapi.WriteAPISuccess(w, r, h.Catalog.Items())
}

func (h *Handlers) Add(w http.ResponseWriter, r *http.Request) {
	logger.LogHTTPRequest(r)

	var req itemRequest
	if err := httpapi.ParseJSONRequest(r, &req); err != nil {
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}

	item, err := h.Catalog.Add(req.Name, req.Price, req.Image)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	httpapi.WriteAPISuccess(w, r, item)
}

func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	logger.LogHTTPRequest(r)

	var req itemRequest
	if err := httpapi.ParseJSONRequest(r, &req); err != nil {
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}

	id := r.PathValue("id")
	if err := h.Catalog.Update(id, req.Name, req.Price, req.Image, r.Header.Get("X-Manager-Pin")); err != nil {
		writeCatalogError(w, r, err)
		return
	}

	item, _ := h.Catalog.Get(id)
	httpapi.WriteAPISuccess(w, r, item)
}

func (h *Handlers) Remove(w http.ResponseWriter, r *http.Request) {
	logger.LogHTTPRequest(r)

	id := r.PathValue("id")
	if err := h.Catalog.Remove(id, r.Header.Get("X-Manager-Pin")); err != nil {
		writeCatalogError(w, r, err)
		return
	}
	httpapi.WriteAPISuccess(w, r, map[string]string{"removed": id})
}

func writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, security.ErrPinMismatch):
		httpapi.WriteAPIError(w, r, http.StatusForbidden, "pin_mismatch", "Incorrect PIN.", "")
	case errors.Is(err, ErrValidation):
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, "invalid_item", "Name and a non-negative price are required", err.Error())
	case errors.Is(err, ErrNotFound):
		httpapi.WriteAPIError(w, r, http.StatusNotFound, "item_not_found", "Menu item not found", "")
	default:
		logger.LogHTTPError(r, http.StatusInternalServerError, err)
		httpapi.WriteAPIError(w, r, http.StatusInternalServerError, "internal_error", "Failed to update menu", "")
	}
}
