// Package classifier derives merchandising flags, stock and price buckets,
// and ranked badges from raw catalog records. Every function is pure.
package classifier

import (
	"fmt"
	"math"
	"slices"

	"github.com/utafrali/storefront/internal/domain"
)

// Classification thresholds.
const (
	BudgetMaxPrice        = 20.0
	MidRangeMaxPrice      = 100.0
	SaleMaxPrice          = 25.0
	NewMaxRatingCount     = 50
	PopularMinRate        = 4.0
	PopularMinCount       = 100
	LowStockThreshold     = 20
	TrendingMinRate       = 3.8
	TrendingMinPopularity = 0.75
	BestsellerMinRate     = 4.5
	BestsellerMinCount    = 150

	defaultPriceMultiplier = 1.5
)

// Badge priorities. Higher is shown first.
const (
	PriorityOutOfStock = 10
	PriorityLowStock   = 9
	PrioritySale       = 8
	PriorityBestseller = 7
	PriorityPopular    = 6
	PriorityTrending   = 5
	PriorityNew        = 4
)

// categoryPriceMultipliers estimate list price from sale price.
var categoryPriceMultipliers = map[string]float64{
	"men's clothing":   1.8,
	"women's clothing": 1.6,
	"jewelery":         2.5,
	"electronics":      1.4,
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// IsNewProduct reports whether the product has few reviews yet.
func IsNewProduct(p domain.Product) bool {
	return p.Rating.Count < NewMaxRatingCount
}

// IsOnSale reports whether the product is priced under the sale threshold.
func IsOnSale(p domain.Product) bool {
	return p.Price < SaleMaxPrice
}

// CalculateDiscountPercentage estimates the discount of a sale product
// against a list price derived from its category. It is 0 when the product
// is not on sale.
func CalculateDiscountPercentage(p domain.Product) int {
	if !IsOnSale(p) {
		return 0
	}
	multiplier, ok := categoryPriceMultipliers[p.Category]
	if !ok {
		multiplier = defaultPriceMultiplier
	}
	estimated := p.Price * multiplier
	if estimated == 0 {
		return 0
	}
	return int(math.Round((estimated - p.Price) / estimated * 100))
}

// IsPopularProduct reports a well rated product with many reviews.
func IsPopularProduct(p domain.Product) bool {
	return p.Rating.Rate >= PopularMinRate && p.Rating.Count >= PopularMinCount
}

// IsTrendingProduct reports a well rated product with a high popularity score.
func IsTrendingProduct(p domain.Product) bool {
	return p.Rating.Rate >= TrendingMinRate && CalculatePopularityScore(p) > TrendingMinPopularity
}

// CalculatePopularityScore weights rating at 70% and review count, saturating
// at 200 reviews, at 30%. The result lies in [0, 1] with two decimals.
func CalculatePopularityScore(p domain.Product) float64 {
	rate := min(max(p.Rating.Rate, 0), 5)
	count := max(p.Rating.Count, 0)
	ratingScore := (rate / 5) * 0.7
	countScore := math.Min(float64(count)/200, 1) * 0.3
	return round2(ratingScore + countScore)
}

// GetStockStatus uses the review count as a stand-in for stock on hand.
func GetStockStatus(p domain.Product) domain.StockStatus {
	switch count := p.Rating.Count; {
	case count <= 0:
		return domain.StockOutOfStock
	case count < LowStockThreshold:
		return domain.StockLowStock
	default:
		return domain.StockInStock
	}
}

// GetStockCount returns the simulated units on hand.
func GetStockCount(p domain.Product) int {
	return p.Rating.Count
}

func GetPriceCategory(p domain.Product) domain.PriceCategory {
	switch {
	case p.Price < BudgetMaxPrice:
		return domain.PriceBudget
	case p.Price < MidRangeMaxPrice:
		return domain.PriceMidRange
	default:
		return domain.PricePremium
	}
}

func GetRatingCategory(p domain.Product) domain.RatingCategory {
	switch rate := p.Rating.Rate; {
	case rate < 2.5:
		return domain.RatingPoor
	case rate < 3.5:
		return domain.RatingFair
	case rate < 4.5:
		return domain.RatingGood
	default:
		return domain.RatingExcellent
	}
}

// GetAvailabilityStatus maps the stock status onto shopper-facing terms.
func GetAvailabilityStatus(p domain.Product) domain.AvailabilityStatus {
	switch GetStockStatus(p) {
	case domain.StockLowStock:
		return domain.Limited
	case domain.StockOutOfStock:
		return domain.Unavailable
	default:
		return domain.Available
	}
}

// GenerateProductBadges returns one badge per matching predicate ordered by
// descending priority. Out-of-stock and low-stock never appear together.
func GenerateProductBadges(p domain.Product) []domain.Badge {
	badges := make([]domain.Badge, 0, 4)

	switch GetStockStatus(p) {
	case domain.StockOutOfStock:
		badges = append(badges, domain.Badge{
			Type: domain.BadgeOutOfStock, Label: "Out of Stock",
			Color: "bg-red-500 text-white", Priority: PriorityOutOfStock,
		})
	case domain.StockLowStock:
		badges = append(badges, domain.Badge{
			Type: domain.BadgeLowStock, Label: fmt.Sprintf("Only %d left", GetStockCount(p)),
			Color: "bg-orange-500 text-white", Priority: PriorityLowStock,
		})
	}

	if IsOnSale(p) {
		label := "Sale"
		if d := CalculateDiscountPercentage(p); d > 0 {
			label = fmt.Sprintf("%d%% OFF", d)
		}
		badges = append(badges, domain.Badge{
			Type: domain.BadgeSale, Label: label,
			Color: "bg-red-600 text-white", Priority: PrioritySale,
		})
	}

	if p.Rating.Rate >= BestsellerMinRate && p.Rating.Count >= BestsellerMinCount {
		badges = append(badges, domain.Badge{
			Type: domain.BadgeBestseller, Label: "Bestseller",
			Color: "bg-yellow-500 text-black", Priority: PriorityBestseller,
		})
	}

	if IsPopularProduct(p) {
		badges = append(badges, domain.Badge{
			Type: domain.BadgePopular, Label: "Popular",
			Color: "bg-blue-500 text-white", Priority: PriorityPopular,
		})
	}

	if IsTrendingProduct(p) {
		badges = append(badges, domain.Badge{
			Type: domain.BadgeTrending, Label: "Trending",
			Color: "bg-purple-500 text-white", Priority: PriorityTrending,
		})
	}

	if IsNewProduct(p) {
		badges = append(badges, domain.Badge{
			Type: domain.BadgeNew, Label: "New",
			Color: "bg-green-500 text-white", Priority: PriorityNew,
		})
	}

	slices.SortStableFunc(badges, func(a, b domain.Badge) int {
		return b.Priority - a.Priority
	})
	return badges
}

// GetPrimaryBadge returns the highest priority badge, if any.
func GetPrimaryBadge(p domain.Product) (domain.Badge, bool) {
	badges := GenerateProductBadges(p)
	if len(badges) == 0 {
		return domain.Badge{}, false
	}
	return badges[0], true
}

// EnhanceProduct assembles every derived field for p. The result depends
// only on p.
func EnhanceProduct(p domain.Product) domain.EnhancedProduct {
	e := domain.EnhancedProduct{
		Product:            p,
		IsNew:              IsNewProduct(p),
		IsOnSale:           IsOnSale(p),
		IsPopular:          IsPopularProduct(p),
		IsTrending:         IsTrendingProduct(p),
		StockStatus:        GetStockStatus(p),
		StockCount:         GetStockCount(p),
		DiscountPercentage: CalculateDiscountPercentage(p),
		PopularityScore:    CalculatePopularityScore(p),
		Badges:             GenerateProductBadges(p),
		PriceCategory:      GetPriceCategory(p),
		RatingCategory:     GetRatingCategory(p),
		AvailabilityStatus: GetAvailabilityStatus(p),
	}
	if e.IsOnSale && e.DiscountPercentage > 0 {
		original := round2(p.Price / (1 - float64(e.DiscountPercentage)/100))
		e.OriginalPrice = &original
	}
	return e
}

func EnhanceProducts(products []domain.Product) []domain.EnhancedProduct {
	out := make([]domain.EnhancedProduct, len(products))
	for i, p := range products {
		out[i] = EnhanceProduct(p)
	}
	return out
}
