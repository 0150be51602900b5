package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewProductStatistics_Empty(t *testing.T) {
	stats := NewProductStatistics(nil, time.Unix(0, 0))

	assert.Equal(t, int64(0), stats.TotalProducts)
	assert.True(t, stats.TotalInventoryValue.IsZero())
	assert.True(t, stats.AveragePrice.IsZero())
	assert.Empty(t, stats.ByCategory)
	assert.Empty(t, stats.ByType)
}

func TestNewProductStatistics_FoldsGroups(t *testing.T) {
	rows := []ProductSummaryRow{
		{Category: "books", Visibility: VisibilityPublic, ProductCount: 2, InventoryValue: dec("300.00"), DiscountedValue: dec("90.00"), OutOfStock: 1},
		{Category: "books", Visibility: VisibilityPrivate, ProductCount: 1, InventoryValue: dec("50.50"), DiscountedValue: dec("0"), OutOfStock: 0},
		{Category: "games", Visibility: VisibilityPublic, ProductCount: 1, InventoryValue: dec("0"), DiscountedValue: dec("0"), OutOfStock: 1},
	}

	stats := NewProductStatistics(rows, time.Unix(0, 0))

	assert.Equal(t, int64(4), stats.TotalProducts)
	assert.Equal(t, int64(2), stats.OutOfStock)
	assert.Equal(t, "350.50", stats.TotalInventoryValue.StringFixed(2))
	assert.Equal(t, "90.00", stats.TotalDiscountedValue.StringFixed(2))
	// 350.50 / 4 = 87.625 -> 87.63
	assert.Equal(t, "87.63", stats.AveragePrice.StringFixed(2))

	require.Len(t, stats.ByCategory, 2)
	assert.Equal(t, "books", stats.ByCategory[0].Key)
	assert.Equal(t, int64(3), stats.ByCategory[0].Count)
	assert.Equal(t, "350.50", stats.ByCategory[0].TotalValue.StringFixed(2))
	assert.Equal(t, "games", stats.ByCategory[1].Key)

	require.Len(t, stats.ByType, 2)
	assert.Equal(t, "private", stats.ByType[0].Key)
	assert.Equal(t, int64(1), stats.ByType[0].Count)
	assert.Equal(t, "public", stats.ByType[1].Key)
	assert.Equal(t, int64(3), stats.ByType[1].Count)
	assert.Equal(t, "300.00", stats.ByType[1].TotalValue.StringFixed(2))
}
