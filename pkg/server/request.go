package server

import (
	"net/http"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/matst80/shophub-catalog/pkg/types"
)

// queryFromRequest copies the session's query state and applies any
// overrides present in the query string. Absent parameters leave the
// session values untouched.
func queryFromRequest(r *http.Request, base types.QueryState) (types.QueryState, error) {
	state := base
	query := r.URL.Query()

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(&state, query); err != nil {
		return state, err
	}
	if _, err := types.ParseSortKey(string(state.SortKey)); err != nil {
		return state, err
	}
	if _, err := types.ParseSortDirection(string(state.SortDirection)); err != nil {
		return state, err
	}

	// Price bounds are kept out of schema decoding so a single bound can
	// be overridden while the other is preserved.
	if v := query.Get("min"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return state, err
		}
		state.PriceRange.Min = min
	}
	if v := query.Get("max"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return state, err
		}
		state.PriceRange.Max = max
	}
	return state, nil
}

// filterUpdate carries partial query-state mutations; nil fields are left
// unchanged. There is no cross-field validation, matching the setter
// contract.
type filterUpdate struct {
	SearchText    *string  `json:"searchText"`
	Category      *string  `json:"category"`
	Seller        *string  `json:"seller"`
	MinPrice      *float64 `json:"minPrice"`
	MaxPrice      *float64 `json:"maxPrice"`
	MinRating     *float64 `json:"minRating"`
	SortKey       *string  `json:"sortKey"`
	SortDirection *string  `json:"sortDirection"`
}

func (u *filterUpdate) apply(state *types.QueryState) error {
	if u.SearchText != nil {
		state.SetSearchText(*u.SearchText)
	}
	if u.Category != nil {
		state.SetCategory(*u.Category)
	}
	if u.Seller != nil {
		state.SetSeller(*u.Seller)
	}
	if u.MinPrice != nil {
		state.SetMinPrice(*u.MinPrice)
	}
	if u.MaxPrice != nil {
		state.SetMaxPrice(*u.MaxPrice)
	}
	if u.MinRating != nil {
		state.SetMinRating(*u.MinRating)
	}
	if u.SortKey != nil {
		key, err := types.ParseSortKey(*u.SortKey)
		if err != nil {
			return err
		}
		state.SortKey = key
	}
	if u.SortDirection != nil {
		direction, err := types.ParseSortDirection(*u.SortDirection)
		if err != nil {
			return err
		}
		state.SortDirection = direction
	}
	return nil
}
