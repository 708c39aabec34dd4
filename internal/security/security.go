// internal/security/security.go
package security

import (
	"errors"
	"fmt"

	"stallpos/internal/logger"
	"stallpos/internal/store"
)

// ErrPinMismatch is returned when a gated action supplies the wrong PIN.
var ErrPinMismatch = errors.New("incorrect manager PIN")

const pinKey = "manager_pin"

// Gate is the manager-PIN confirmation gate for catalog edits. When no PIN
// is stored, every confirmation succeeds. Comparison is exact string
// equality against the single shared secret.
type Gate struct {
	store *store.Store
}

func NewGate(s *store.Store) *Gate {
	return &Gate{store: s}
}

// Set stores the PIN. An empty PIN clears the gate instead.
func (g *Gate) Set(pin string) error {
	if pin == "" {
		return g.Clear()
	}
	if err := g.store.Set(pinKey, pin); err != nil {
		return fmt.Errorf("failed to save manager PIN: %w", err)
	}
	logger.LogInfo("Manager PIN updated")
	return nil
}

// Clear removes the PIN so gated actions no longer prompt.
func (g *Gate) Clear() error {
	if err := g.store.Delete(pinKey); err != nil {
		return fmt.Errorf("failed to clear manager PIN: %w", err)
	}
	logger.LogInfo("Manager PIN cleared")
	return nil
}

// Enabled reports whether a PIN is currently configured.
func (g *Gate) Enabled() bool {
	_, ok, err := g.store.Get(pinKey)
	if err != nil {
		logger.LogWarn("Failed to read manager PIN: %v", err)
		return false
	}
	return ok
}

// Confirm checks the entered PIN against the stored one. With no PIN
// configured every entry passes, matching the optional-PIN design.
func (g *Gate) Confirm(entered string) error {
	stored, ok, err := g.store.Get(pinKey)
	if err != nil {
		return fmt.Errorf("failed to read manager PIN: %w", err)
	}
	if !ok {
		return nil
	}
	if entered != stored {
		return ErrPinMismatch
	}
	return nil
}

// ConfirmFunc is the injected capability catalog mutations call through,
// keeping menu logic testable without a stored PIN.
type ConfirmFunc func(entered string) error

// Confirmer adapts the gate to the capability shape.
func (g *Gate) Confirmer() ConfirmFunc {
	return g.Confirm
}
