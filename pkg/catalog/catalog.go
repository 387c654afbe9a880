package catalog

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/matst80/shophub-catalog/pkg/store"
	"github.com/matst80/shophub-catalog/pkg/types"
)

// Catalog owns the loaded product collection and its derived facet
// summary. All reads are pure; the collection is only replaced wholesale,
// which recomputes the facets and bumps the generation.
type Catalog struct {
	mu         sync.RWMutex
	products   []types.Product
	facets     types.FacetSummary
	generation uint64

	changeSeq  atomic.Uint64
	appliedSeq uint64
}

func New() *Catalog {
	return &Catalog{
		facets: Summarize(nil),
	}
}

// Load fetches the feed and replaces the collection. A fetch failure
// leaves the previous collection intact. When several loads overlap, a
// response from an older fetch is dropped instead of overwriting a newer
// one.
func (c *Catalog) Load(ctx context.Context, productStore store.ProductStore) error {
	seq := c.changeSeq.Add(1)
	products, err := productStore.FetchProducts(ctx)
	if err != nil {
		return err
	}
	c.apply(seq, products)
	return nil
}

// SetProducts replaces the collection directly, used by the feed change
// listener. It claims its change sequence at call time, so a feed load
// that was already in flight cannot overwrite it afterwards.
func (c *Catalog) SetProducts(products []types.Product) {
	c.apply(c.changeSeq.Add(1), products)
}

func (c *Catalog) apply(seq uint64, products []types.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.appliedSeq {
		return
	}
	c.appliedSeq = seq
	c.setLocked(products)
}

func (c *Catalog) Clear() {
	c.SetProducts(nil)
}

func (c *Catalog) setLocked(products []types.Product) {
	c.products = products
	c.facets = Summarize(products)
	c.generation++
}

// Query runs the filter-sort engine over the current collection.
func (c *Catalog) Query(state *types.QueryState) []types.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Query(c.products, state)
}

func (c *Catalog) Get(id uint) (types.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.products {
		if c.products[i].Id == id {
			return c.products[i], true
		}
	}
	return types.Product{}, false
}

func (c *Catalog) Facets() types.FacetSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.facets
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// Generation increases every time the collection is replaced. Used for
// cache keys.
func (c *Catalog) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}
