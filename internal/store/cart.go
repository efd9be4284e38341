package store

import (
	"github.com/shopspring/decimal"

	"github.com/jask/storefront/internal/events"
	"github.com/jask/storefront/internal/model"
)

// Cart holds the products added to the basket, in insertion order. It does not
// deduplicate; the presenter only adds a product that is not yet contained.
type Cart struct {
	bus   *events.Bus
	items []model.Product
}

func NewCart(bus *events.Bus) *Cart {
	return &Cart{bus: bus}
}

// AddItem appends p.
func (c *Cart) AddItem(p model.Product) {
	c.items = append(c.items, p)
	c.changed()
}

// RemoveItem drops every entry whose id matches.
func (c *Cart) RemoveItem(id string) {
	kept := c.items[:0:0]
	for _, p := range c.items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.items = kept
	c.changed()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
	c.changed()
}

// Items returns a copy of the cart contents.
func (c *Cart) Items() []model.Product {
	return cloneProducts(c.items)
}

// IDs returns the product ids in cart order.
func (c *Cart) IDs() []string {
	ids := make([]string, 0, len(c.items))
	for _, p := range c.items {
		ids = append(ids, p.ID)
	}
	return ids
}

// Total sums item prices; priceless items count as zero.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.items {
		total = total.Add(p.PriceOrZero())
	}
	return total
}

// Count returns the number of entries.
func (c *Cart) Count() int { return len(c.items) }

// Contains reports whether any entry has the given id.
func (c *Cart) Contains(id string) bool {
	for _, p := range c.items {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (c *Cart) changed() {
	c.bus.Emit(events.CartChanged{Items: c.Items()})
}
