// Package cache holds the client's in-memory view of the remote catalog.
//
// The cache is written from exactly two places: the query engine replaces it
// wholesale after a successful fetch, and the inventory controller applies a
// single confirmed purchase decrement. Everything else only reads it.
package cache

import (
	"sync"

	"github.com/sweetshop/storefront/internal/core/domain"
)

// Catalog maps sweet id to its last fetched view, preserving fetch order.
type Catalog struct {
	mu    sync.RWMutex
	items map[string]domain.Sweet
	order []string
}

func NewCatalog() *Catalog {
	return &Catalog{items: make(map[string]domain.Sweet)}
}

// Replace swaps the whole cached view for the given listing.
func (c *Catalog) Replace(sweets []domain.Sweet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]domain.Sweet, len(sweets))
	c.order = c.order[:0]
	for _, s := range sweets {
		if _, seen := c.items[s.ID]; !seen {
			c.order = append(c.order, s.ID)
		}
		c.items[s.ID] = s
	}
}

// Get returns the cached view of a single sweet.
func (c *Catalog) Get(id string) (domain.Sweet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.items[id]
	return s, ok
}

// Items returns the cached sweets in fetch order.
func (c *Catalog) Items() []domain.Sweet {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Sweet, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Len returns the number of cached sweets.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// DecrementQuantity lowers the cached quantity of id by exactly one, never
// below zero. Unknown ids are ignored. Reports whether a change was applied.
func (c *Catalog) DecrementQuantity(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.items[id]
	if !ok || s.Quantity <= 0 {
		return false
	}
	s.Quantity--
	c.items[id] = s
	return true
}
