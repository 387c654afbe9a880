package catalog

import "github.com/matst80/shophub-catalog/pkg/types"

// ComparisonSet holds the products picked for side-by-side comparison.
// It is an ordered set keyed by product id, with no upper bound. It is an
// independent view: toggling never affects query results.
type ComparisonSet struct {
	items []types.Product
}

// Toggle removes the product when one with the same id is present,
// otherwise appends it. Returns true when the product is in the set after
// the call.
func (c *ComparisonSet) Toggle(p types.Product) bool {
	for i := range c.items {
		if c.items[i].Id == p.Id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return false
		}
	}
	c.items = append(c.items, p)
	return true
}

func (c *ComparisonSet) Contains(id uint) bool {
	for i := range c.items {
		if c.items[i].Id == id {
			return true
		}
	}
	return false
}

func (c *ComparisonSet) Clear() {
	c.items = nil
}

func (c *ComparisonSet) Len() int {
	return len(c.items)
}

// Active reports whether the comparison view should be shown, which takes
// at least two entries.
func (c *ComparisonSet) Active() bool {
	return len(c.items) >= 2
}

// Items returns the selection in insertion order.
func (c *ComparisonSet) Items() []types.Product {
	items := make([]types.Product, len(c.items))
	copy(items, c.items)
	return items
}
