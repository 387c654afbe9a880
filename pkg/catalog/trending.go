package catalog

import "github.com/matst80/shophub-catalog/pkg/types"

type presetSettings struct {
	sortKey   types.SortKey
	direction types.SortDirection
	minRating float64
}

var presetTable = map[types.Preset]presetSettings{
	types.PresetNone:         {types.SortByName, types.SortAsc, 0},
	types.PresetTopRated:     {types.SortByRating, types.SortDesc, 4},
	types.PresetMostReviewed: {types.SortByReviews, types.SortDesc, 0},
	types.PresetBestPrice:    {types.SortByPrice, types.SortAsc, 0},
}

// ApplyPreset overwrites sort key, sort direction and minimum rating
// according to the preset table. Search text, category, seller and price
// bounds are left untouched. Unknown presets are ignored.
func ApplyPreset(state *types.QueryState, preset types.Preset) {
	settings, ok := presetTable[preset]
	if !ok {
		return
	}
	state.SortKey = settings.sortKey
	state.SortDirection = settings.direction
	state.MinRating = settings.minRating
	state.TrendingPreset = preset
}
