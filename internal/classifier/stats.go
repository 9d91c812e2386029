package classifier

import (
	"fmt"
	"math"
	"slices"

	"github.com/utafrali/storefront/internal/domain"
)

// CalculateProductStats summarises products. Averages carry two decimals.
func CalculateProductStats(products []domain.Product) domain.ProductStats {
	stats := domain.ProductStats{
		TotalProducts:        len(products),
		CategoryDistribution: make(map[string]int),
	}
	if len(products) == 0 {
		return stats
	}

	var totalPrice, totalRating float64
	for _, p := range products {
		totalPrice += p.Price
		totalRating += p.Rating.Rate
		stats.CategoryDistribution[p.Category]++

		switch GetPriceCategory(p) {
		case domain.PriceBudget:
			stats.PriceRanges.Budget++
		case domain.PriceMidRange:
			stats.PriceRanges.MidRange++
		default:
			stats.PriceRanges.Premium++
		}

		switch GetStockStatus(p) {
		case domain.StockInStock:
			stats.StockDistribution.InStock++
		case domain.StockLowStock:
			stats.StockDistribution.LowStock++
		default:
			stats.StockDistribution.OutOfStock++
		}
	}

	n := float64(len(products))
	stats.AveragePrice = round2(totalPrice / n)
	stats.AverageRating = round2(totalRating / n)
	return stats
}

// GetPriceRange returns whole-number bounds enclosing every price, or
// {0, 100} for an empty list.
func GetPriceRange(products []domain.Product) domain.PriceRange {
	if len(products) == 0 {
		return domain.PriceRange{Min: 0, Max: 100}
	}
	lo, hi := products[0].Price, products[0].Price
	for _, p := range products[1:] {
		lo = min(lo, p.Price)
		hi = max(hi, p.Price)
	}
	return domain.PriceRange{Min: math.Floor(lo), Max: math.Ceil(hi)}
}

// GetUniqueCategories returns the distinct categories in sorted order.
func GetUniqueCategories(products []domain.Product) []string {
	categories := make([]string, 0, len(products))
	for _, p := range products {
		categories = append(categories, p.Category)
	}
	slices.Sort(categories)
	return slices.Compact(categories)
}

// StockStatusText renders a stock status for display.
func StockStatusText(status domain.StockStatus, count int) string {
	switch status {
	case domain.StockInStock:
		return "In Stock"
	case domain.StockLowStock:
		if count > 0 {
			return fmt.Sprintf("Only %d left", count)
		}
		return "Low Stock"
	case domain.StockOutOfStock:
		return "Out of Stock"
	default:
		return "Unknown"
	}
}
