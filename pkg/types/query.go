package types

import "fmt"

type SortKey string

const (
	SortByName    SortKey = "name"
	SortByPrice   SortKey = "price"
	SortByRating  SortKey = "rating"
	SortByReviews SortKey = "reviews"
)

func ParseSortKey(value string) (SortKey, error) {
	switch SortKey(value) {
	case SortByName, SortByPrice, SortByRating, SortByReviews:
		return SortKey(value), nil
	}
	return "", fmt.Errorf("unknown sort key %q", value)
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func ParseSortDirection(value string) (SortDirection, error) {
	switch SortDirection(value) {
	case SortAsc, SortDesc:
		return SortDirection(value), nil
	}
	return "", fmt.Errorf("unknown sort direction %q", value)
}

type Preset string

const (
	PresetNone         Preset = "none"
	PresetTopRated     Preset = "top-rated"
	PresetMostReviewed Preset = "most-reviewed"
	PresetBestPrice    Preset = "best-price"
)

func ParsePreset(value string) (Preset, error) {
	switch Preset(value) {
	case PresetNone, PresetTopRated, PresetMostReviewed, PresetBestPrice:
		return Preset(value), nil
	}
	return "", fmt.Errorf("unknown trending preset %q", value)
}

type PriceBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FacetSummary is derived from the full product collection, recomputed
// whenever the collection changes.
type FacetSummary struct {
	Categories []string    `json:"categories"`
	Sellers    []string    `json:"sellers"`
	Price      PriceBounds `json:"price"`
}

// FilterAll is the sentinel for category and seller filters that match
// every product.
const FilterAll = "all"

// QueryState holds the filter, sort and preset parameters for one owner.
// Fields are mutated independently; the only caller contract is keeping
// PriceRange.Min <= PriceRange.Max, which is not enforced here.
type QueryState struct {
	SearchText     string        `json:"searchText" schema:"q"`
	Category       string        `json:"category" schema:"category"`
	Seller         string        `json:"seller" schema:"seller"`
	PriceRange     PriceBounds   `json:"priceRange" schema:"-"`
	MinRating      float64       `json:"minRating" schema:"minRating"`
	SortKey        SortKey       `json:"sortKey" schema:"sort"`
	SortDirection  SortDirection `json:"sortDirection" schema:"order"`
	TrendingPreset Preset        `json:"trendingPreset" schema:"-"`
}

// DefaultQueryState returns the identity filter over a collection with the
// given observed price bounds.
func DefaultQueryState(bounds PriceBounds) QueryState {
	return QueryState{
		SearchText:     "",
		Category:       FilterAll,
		Seller:         FilterAll,
		PriceRange:     bounds,
		MinRating:      0,
		SortKey:        SortByName,
		SortDirection:  SortAsc,
		TrendingPreset: PresetNone,
	}
}

// Reset restores every field to its default. Price bounds come from the
// facet summary at call time, not from a constant.
func (q *QueryState) Reset(bounds PriceBounds) {
	*q = DefaultQueryState(bounds)
}

func (q *QueryState) SetSearchText(text string) {
	q.SearchText = text
}

func (q *QueryState) SetCategory(category string) {
	q.Category = category
}

func (q *QueryState) SetSeller(seller string) {
	q.Seller = seller
}

// SetMinPrice and SetMaxPrice each preserve the other bound.
func (q *QueryState) SetMinPrice(min float64) {
	q.PriceRange.Min = min
}

func (q *QueryState) SetMaxPrice(max float64) {
	q.PriceRange.Max = max
}

func (q *QueryState) SetMinRating(rating float64) {
	q.MinRating = rating
}

func (q *QueryState) SetSort(key SortKey, direction SortDirection) {
	q.SortKey = key
	q.SortDirection = direction
}
