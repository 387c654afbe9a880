package catalog

import (
	"math"
	"sort"

	"github.com/matst80/shophub-catalog/pkg/types"
)

// Fallback price bounds for an empty collection.
var emptyBounds = types.PriceBounds{Min: 0, Max: 1000}

// Summarize derives the facet summary for a product collection. It always
// recomputes from scratch; there is no incremental update path.
func Summarize(products []types.Product) types.FacetSummary {
	if len(products) == 0 {
		return types.FacetSummary{
			Categories: []string{},
			Sellers:    []string{},
			Price:      emptyBounds,
		}
	}

	categories := make(map[string]struct{})
	sellers := make(map[string]struct{})
	min := products[0].Price
	max := products[0].Price

	for i := range products {
		p := &products[i]
		categories[p.Category] = struct{}{}
		sellers[p.SellerOrDefault()] = struct{}{}
		if p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
	}

	return types.FacetSummary{
		Categories: sortedKeys(categories),
		Sellers:    sortedKeys(sellers),
		Price: types.PriceBounds{
			Min: math.Floor(min),
			Max: math.Ceil(max),
		},
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
