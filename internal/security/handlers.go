// internal/security/handlers.go
package security

import (
	"net/http"

	"stallpos/internal/httpapi"
	"stallpos/internal/logger"
)

// Handlers exposes manager PIN management. Setting the PIN is not itself
// gated, matching the settings panel of the original till.
type Handlers struct {
	Gate *Gate
}

// SetPin stores a new PIN; an empty PIN clears the gate.
func (h *Handlers) SetPin(w http.ResponseWriter, r *http.Request) {
	logger.LogHTTPRequest(r)

	var req struct {
		Pin string `json:"pin"`
	}
	if err := httpapi.ParseJSONRequest(r, &req); err != nil {
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}

	if err := h.Gate.Set(req.Pin); err != nil {
		logger.LogHTTPError(r, http.StatusInternalServerError, err)
		httpapi.WriteAPIError(w, r, http.StatusInternalServerError, "internal_error", "Failed to save PIN", "")
		return
	}

	msg := "PIN saved."
	if req.Pin == "" {
		msg = "PIN cleared."
	}
	httpapi.WriteAPISuccess(w, r, map[string]interface{}{"message": msg, "enabled": h.Gate.Enabled()})
}
