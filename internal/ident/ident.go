// internal/ident/ident.go
package ident

import "github.com/google/uuid"

// New returns a collision-resistant opaque identifier for menu items and
// orders. Identifiers are never parsed, only compared.
func New() string {
	return uuid.NewString()
}
