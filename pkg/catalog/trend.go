package catalog

import "github.com/matst80/shophub-catalog/pkg/types"

type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

type PriceTrend struct {
	Trend TrendDirection `json:"trend"`
	Label string         `json:"label"`
}

// AnnotateTrend returns the decorative price-trend indicator for a
// product. It is a pure function of the id (id mod 3), so the same product
// always gets the same indicator. It carries no real price-history signal.
func AnnotateTrend(p *types.Product) PriceTrend {
	switch p.Id % 3 {
	case 0:
		return PriceTrend{Trend: TrendUp, Label: "Trending up"}
	case 1:
		return PriceTrend{Trend: TrendDown, Label: "Trending down"}
	default:
		return PriceTrend{Trend: TrendFlat, Label: "Stable"}
	}
}
