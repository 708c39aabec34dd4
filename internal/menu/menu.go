// internal/menu/menu.go
package menu

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"stallpos/internal/ident"
	"stallpos/internal/logger"
	"stallpos/internal/security"
	"stallpos/internal/store"
)

var (
	// ErrValidation rejects empty names and non-finite or negative prices.
	ErrValidation = errors.New("invalid menu item")
	// ErrNotFound means the item id does not exist in the catalog.
	ErrNotFound = errors.New("menu item not found")
)

const menuKey = "menu_items"

// Item is one sellable menu entry. The id is opaque and immutable after
// creation; name and price may be edited in place.
type Item struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

// Catalog is the single source of truth for sellable items. It is loaded
// once at startup and re-persisted in full after every mutation. Edits and
// deletes go through the manager-PIN confirmation gate.
type Catalog struct {
	mu      sync.RWMutex
	items   []Item
	store   *store.Store
	confirm security.ConfirmFunc
}

// defaultItems seeds the catalog on first run or after a corrupt read.
func defaultItems() []Item {
	return []Item{
		{ID: ident.New(), Name: "Masala Dosa", Price: 70},
		{ID: ident.New(), Name: "Idli (2 pcs)", Price: 30},
		{ID: ident.New(), Name: "Chai", Price: 10},
	}
}

// Load builds the catalog from the record store. Absent or malformed
// stored text falls back to the default starter menu, persisted back so
// the fallback becomes durable.
func Load(s *store.Store, confirm security.ConfirmFunc) (*Catalog, error) {
	c := &Catalog{store: s, confirm: confirm}

	raw, ok, err := s.Get(menuKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	if ok {
		var items []Item
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			logger.LogWarn("Corrupt catalog record, reseeding defaults: %v", err)
		} else {
			c.items = items
			return c, nil
		}
	}

	c.items = defaultItems()
	if err := c.persistLocked(); err != nil {
		return nil, err
	}
	logger.LogInfo("Seeded default menu with %d items", len(c.items))
	return c, nil
}

// persistLocked writes the full catalog back. Callers hold the lock (or
// are still single-threaded during Load).
func (c *Catalog) persistLocked() error {
	data, err := json.Marshal(c.items)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := c.store.Set(menuKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist catalog: %w", err)
	}
	return nil
}

// Items returns the catalog in insertion order.
func (c *Catalog) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the item with the given id.
func (c *Catalog) Get(id string) (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

func validate(name string, price float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return fmt.Errorf("%w: price must be a finite number >= 0", ErrValidation)
	}
	return nil
}

// Add creates a new item with a fresh id. Invalid input persists nothing.
func (c *Catalog) Add(name string, price float64, image string) (Item, error) {
	if err := validate(name, price); err != nil {
		return Item{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	item := Item{ID: ident.New(), Name: strings.TrimSpace(name), Price: price, Image: image}
	c.items = append(c.items, item)
	if err := c.persistLocked(); err != nil {
		c.items = c.items[:len(c.items)-1]
		return Item{}, err
	}
	logger.LogInfo("Menu item added: %s (%s)", item.Name, item.ID)
	return item, nil
}

// Update edits an item in place, preserving its id. Gated by the PIN
// confirmation when a PIN is configured.
func (c *Catalog) Update(id, name string, price float64, image, pin string) error {
	if err := c.confirm(pin); err != nil {
		return err
	}
	if err := validate(name, price); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			prev := c.items[i]
			c.items[i].Name = strings.TrimSpace(name)
			c.items[i].Price = price
			c.items[i].Image = image
			if err := c.persistLocked(); err != nil {
				c.items[i] = prev
				return err
			}
			logger.LogInfo("Menu item updated: %s (%s)", c.items[i].Name, id)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Remove deletes an item. Gated by the PIN confirmation when configured.
// Historical orders keep their snapshotted name and price.
func (c *Catalog) Remove(id, pin string) error {
	if err := c.confirm(pin); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			removed := c.items[i]
			prev := c.items
			c.items = append(append([]Item{}, c.items[:i]...), c.items[i+1:]...)
			if err := c.persistLocked(); err != nil {
				c.items = prev
				return err
			}
			logger.LogInfo("Menu item removed: %s (%s)", removed.Name, id)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
