package catalog

import (
	"sort"
	"strings"

	"github.com/matst80/shophub-catalog/pkg/types"
)

// Query filters and sorts a product collection according to the query
// state. It is a pure function: inputs are never mutated and the result is
// a fresh slice.
func Query(products []types.Product, state *types.QueryState) []types.Product {
	result := make([]types.Product, 0, len(products))
	needle := strings.ToLower(state.SearchText)
	for i := range products {
		if matches(&products[i], state, needle) {
			result = append(result, products[i])
		}
	}
	sortProducts(result, state.SortKey, state.SortDirection)
	return result
}

func matches(p *types.Product, state *types.QueryState, needle string) bool {
	if needle != "" &&
		!strings.Contains(strings.ToLower(p.Title), needle) &&
		!strings.Contains(strings.ToLower(p.Description), needle) {
		return false
	}
	if state.Category != types.FilterAll && p.Category != state.Category {
		return false
	}
	if state.Seller != types.FilterAll && p.SellerOrDefault() != state.Seller {
		return false
	}
	if p.Price < state.PriceRange.Min || p.Price > state.PriceRange.Max {
		return false
	}
	return p.Rating.Rate >= state.MinRating
}

// less orders two products by the sort key, falling back to id for equal
// keys so the ordering is total and asc/desc are exact reverses.
func less(a, b *types.Product, key types.SortKey) bool {
	switch key {
	case types.SortByPrice:
		if a.Price != b.Price {
			return a.Price < b.Price
		}
	case types.SortByRating:
		if a.Rating.Rate != b.Rating.Rate {
			return a.Rating.Rate < b.Rating.Rate
		}
	case types.SortByReviews:
		if a.Rating.Count != b.Rating.Count {
			return a.Rating.Count < b.Rating.Count
		}
	default:
		at := strings.ToLower(a.Title)
		bt := strings.ToLower(b.Title)
		if at != bt {
			return at < bt
		}
	}
	return a.Id < b.Id
}

func sortProducts(products []types.Product, key types.SortKey, direction types.SortDirection) {
	if direction == types.SortDesc {
		sort.Slice(products, func(i, j int) bool {
			return less(&products[j], &products[i], key)
		})
		return
	}
	sort.Slice(products, func(i, j int) bool {
		return less(&products[i], &products[j], key)
	})
}
