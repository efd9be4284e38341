// Package store holds the observable domain state containers. Each store owns
// one slice of state and emits exactly one change event, carrying a copy of
// the new state, after every mutation.
package store

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/storefront/internal/events"
	"github.com/jask/storefront/internal/model"
)

const containsBonus = 1 << 16

// Catalog holds the loaded product list and the product selected for preview.
type Catalog struct {
	bus      *events.Bus
	items    []model.Product
	selected *model.Product
}

func NewCatalog(bus *events.Bus) *Catalog {
	return &Catalog{bus: bus}
}

// SetItems replaces the product list wholesale.
func (c *Catalog) SetItems(items []model.Product) {
	c.items = cloneProducts(items)
	c.bus.Emit(events.CatalogChanged{Products: c.Items()})
}

// Items returns a copy of the product list in load order.
func (c *Catalog) Items() []model.Product {
	return cloneProducts(c.items)
}

// ItemByID looks up a product by id.
func (c *Catalog) ItemByID(id string) (model.Product, bool) {
	for _, p := range c.items {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// SetSelectedItem records p as the product shown in the preview.
func (c *Catalog) SetSelectedItem(p model.Product) {
	sel := p
	c.selected = &sel
	c.bus.Emit(events.SelectedItemChanged{Product: p})
}

// SelectedItem returns the current selection, if any.
func (c *Catalog) SelectedItem() (model.Product, bool) {
	if c.selected == nil {
		return model.Product{}, false
	}
	return *c.selected, true
}

// Match returns the product whose title best matches query. Titles containing
// the query win over edit-distance matches; ties keep catalog order.
func (c *Catalog) Match(query string) (model.Product, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(c.items) == 0 {
		return model.Product{}, false
	}
	best, bestScore := -1, 0
	for i, p := range c.items {
		title := strings.ToLower(p.Title)
		score := levenshtein.ComputeDistance(q, title)
		if strings.Contains(title, q) {
			score = len(title) - len(q) - containsBonus
		} else if score > max(len(q), len(title))/2 {
			continue
		}
		if best < 0 || score < bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return model.Product{}, false
	}
	return c.items[best], true
}

func cloneProducts(in []model.Product) []model.Product {
	if in == nil {
		return []model.Product{}
	}
	out := make([]model.Product, len(in))
	copy(out, in)
	return out
}
