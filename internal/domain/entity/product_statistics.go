package entity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ProductSummaryRow is one (category, visibility) group of the product table
// as aggregated by the store.
type ProductSummaryRow struct {
	Category        string
	Visibility      Visibility
	ProductCount    int64
	InventoryValue  decimal.Decimal
	DiscountedValue decimal.Decimal
	OutOfStock      int64
}

type StatisticsBreakdown struct {
	Key        string          `json:"key"`
	Count      int64           `json:"count"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// ProductStatistics is the aggregate snapshot served by the catalog.
// AveragePrice is total inventory value divided by product count.
type ProductStatistics struct {
	TotalProducts        int64                 `json:"totalProducts"`
	TotalInventoryValue  decimal.Decimal       `json:"totalInventoryValue"`
	TotalDiscountedValue decimal.Decimal       `json:"totalDiscountedValue"`
	AveragePrice         decimal.Decimal       `json:"averagePrice"`
	OutOfStock           int64                 `json:"outOfStock"`
	ByCategory           []StatisticsBreakdown `json:"byCategory"`
	ByType               []StatisticsBreakdown `json:"byType"`
	ComputedAt           time.Time             `json:"computedAt"`
}

// NewProductStatistics folds summary rows into a snapshot with monetary
// aggregates rounded to two decimal places.
func NewProductStatistics(rows []ProductSummaryRow, computedAt time.Time) *ProductStatistics {
	stats := &ProductStatistics{
		TotalInventoryValue:  decimal.Zero,
		TotalDiscountedValue: decimal.Zero,
		AveragePrice:         decimal.Zero,
		ComputedAt:           computedAt,
	}

	byCategory := map[string]*StatisticsBreakdown{}
	byType := map[string]*StatisticsBreakdown{}

	for _, row := range rows {
		stats.TotalProducts += row.ProductCount
		stats.TotalInventoryValue = stats.TotalInventoryValue.Add(row.InventoryValue)
		stats.TotalDiscountedValue = stats.TotalDiscountedValue.Add(row.DiscountedValue)
		stats.OutOfStock += row.OutOfStock

		accumulate(byCategory, row.Category, row)
		accumulate(byType, string(row.Visibility), row)
	}

	if stats.TotalProducts > 0 {
		stats.AveragePrice = stats.TotalInventoryValue.Div(decimal.NewFromInt(stats.TotalProducts))
	}

	stats.TotalInventoryValue = stats.TotalInventoryValue.Round(2)
	stats.TotalDiscountedValue = stats.TotalDiscountedValue.Round(2)
	stats.AveragePrice = stats.AveragePrice.Round(2)
	stats.ByCategory = flatten(byCategory)
	stats.ByType = flatten(byType)

	return stats
}

func accumulate(groups map[string]*StatisticsBreakdown, key string, row ProductSummaryRow) {
	group, ok := groups[key]
	if !ok {
		group = &StatisticsBreakdown{Key: key, TotalValue: decimal.Zero}
		groups[key] = group
	}
	group.Count += row.ProductCount
	group.TotalValue = group.TotalValue.Add(row.InventoryValue)
}

func flatten(groups map[string]*StatisticsBreakdown) []StatisticsBreakdown {
	out := make([]StatisticsBreakdown, 0, len(groups))
	for _, group := range groups {
		group.TotalValue = group.TotalValue.Round(2)
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
