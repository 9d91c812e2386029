package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/utafrali/storefront/internal/domain"
)

func TestCalculateProductStats(t *testing.T) {
	products := []domain.Product{
		{Price: 10, Category: "a", Rating: domain.Rating{Rate: 4, Count: 0}},
		{Price: 50, Category: "b", Rating: domain.Rating{Rate: 3, Count: 10}},
		{Price: 150, Category: "a", Rating: domain.Rating{Rate: 4.5, Count: 300}},
	}

	stats := CalculateProductStats(products)

	assert.Equal(t, 3, stats.TotalProducts)
	assert.InDelta(t, 70.0, stats.AveragePrice, 1e-9)
	assert.InDelta(t, 3.83, stats.AverageRating, 1e-9)
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, stats.CategoryDistribution)
	assert.Equal(t, domain.PriceDistribution{Budget: 1, MidRange: 1, Premium: 1}, stats.PriceRanges)
	assert.Equal(t, domain.StockDistribution{InStock: 1, LowStock: 1, OutOfStock: 1}, stats.StockDistribution)
}

func TestCalculateProductStats_Empty(t *testing.T) {
	stats := CalculateProductStats(nil)

	assert.Zero(t, stats.TotalProducts)
	assert.Zero(t, stats.AveragePrice)
	assert.NotNil(t, stats.CategoryDistribution)
	assert.Empty(t, stats.CategoryDistribution)
}

func TestGetPriceRange(t *testing.T) {
	products := []domain.Product{{Price: 12.5}, {Price: 7.25}, {Price: 109.95}}

	assert.Equal(t, domain.PriceRange{Min: 7, Max: 110}, GetPriceRange(products))
	assert.Equal(t, domain.PriceRange{Min: 0, Max: 100}, GetPriceRange(nil))
}

func TestGetUniqueCategories(t *testing.T) {
	products := []domain.Product{{Category: "jewelery"}, {Category: "electronics"}, {Category: "jewelery"}}

	assert.Equal(t, []string{"electronics", "jewelery"}, GetUniqueCategories(products))
	assert.Empty(t, GetUniqueCategories(nil))
}

func TestStockStatusText(t *testing.T) {
	assert.Equal(t, "In Stock", StockStatusText(domain.StockInStock, 40))
	assert.Equal(t, "Only 3 left", StockStatusText(domain.StockLowStock, 3))
	assert.Equal(t, "Low Stock", StockStatusText(domain.StockLowStock, 0))
	assert.Equal(t, "Out of Stock", StockStatusText(domain.StockOutOfStock, 0))
	assert.Equal(t, "Unknown", StockStatusText("bogus", 0))
}
