// internal/cart/cart.go
package cart

import (
	"sort"
	"sync"

	"stallpos/internal/menu"
)

// Cart is the till's in-progress order: menu item id -> quantity. State is
// ephemeral; nothing here touches the record store. Prices are read live
// from the catalog and only freeze at submission.
type Cart struct {
	mu  sync.Mutex
	qty map[string]int
}

// Line is one cart entry priced against the current catalog.
type Line struct {
	ItemID    string  `json:"itemId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
	LineTotal float64 `json:"lineTotal"`
}

func New() *Cart {
	return &Cart{qty: make(map[string]int)}
}

// AddOne increments the quantity for an item.
func (c *Cart) AddOne(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.qty[itemID]++
}

// SetQty sets an exact quantity. Zero removes the line; negative clamps
// to zero. Zero quantities are never stored.
func (c *Cart) SetQty(itemID string, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if qty <= 0 {
		delete(c.qty, itemID)
		return
	}
	c.qty[itemID] = qty
}

// Remove drops an item from the cart entirely.
func (c *Cart) Remove(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.qty, itemID)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.qty = make(map[string]int)
}

// Quantities returns a copy of the raw quantity map.
func (c *Cart) Quantities() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.qty))
	for id, q := range c.qty {
		out[id] = q
	}
	return out
}

// Lines prices the cart against the current catalog. Items deleted from
// the catalog while sitting in the cart are skipped, as the original did.
// Order is stable by item id so repeated reads render identically.
func (c *Cart) Lines(catalog *menu.Catalog) []Line {
	quantities := c.Quantities()

	ids := make([]string, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	lines := make([]Line, 0, len(ids))
	for _, id := range ids {
		item, ok := catalog.Get(id)
		if !ok {
			continue
		}
		q := quantities[id]
		lines = append(lines, Line{
			ItemID:    id,
			Name:      item.Name,
			Price:     item.Price,
			Qty:       q,
			LineTotal: item.Price * float64(q),
		})
	}
	return lines
}

// Subtotal sums live menu price times quantity.
func (c *Cart) Subtotal(catalog *menu.Catalog) float64 {
	var total float64
	for _, line := range c.Lines(catalog) {
		total += line.LineTotal
	}
	return total
}
