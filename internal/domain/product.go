package domain

// Rating is the aggregate review score of a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a raw catalog record. It is treated as immutable.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}

// StockStatus is derived from the review count, which stands in for stock.
type StockStatus string

const (
	StockInStock    StockStatus = "in-stock"
	StockLowStock   StockStatus = "low-stock"
	StockOutOfStock StockStatus = "out-of-stock"
)

// PriceCategory buckets a product by price.
type PriceCategory string

const (
	PriceBudget   PriceCategory = "budget"
	PriceMidRange PriceCategory = "mid-range"
	PricePremium  PriceCategory = "premium"
)

// RatingCategory buckets a product by rating.
type RatingCategory string

const (
	RatingPoor      RatingCategory = "poor"
	RatingFair      RatingCategory = "fair"
	RatingGood      RatingCategory = "good"
	RatingExcellent RatingCategory = "excellent"
)

// AvailabilityStatus mirrors StockStatus in shopper-facing terms.
type AvailabilityStatus string

const (
	Available   AvailabilityStatus = "available"
	Limited     AvailabilityStatus = "limited"
	Unavailable AvailabilityStatus = "unavailable"
)

// BadgeType enumerates product badges.
type BadgeType string

const (
	BadgeNew        BadgeType = "new"
	BadgeSale       BadgeType = "sale"
	BadgePopular    BadgeType = "popular"
	BadgeLowStock   BadgeType = "low-stock"
	BadgeOutOfStock BadgeType = "out-of-stock"
	BadgeTrending   BadgeType = "trending"
	BadgeBestseller BadgeType = "bestseller"
)

// Badge is a labelled marker shown on a product card. Higher Priority is
// shown first. Color is an opaque presentation hint.
type Badge struct {
	Type     BadgeType `json:"type"`
	Label    string    `json:"label"`
	Color    string    `json:"color"`
	Priority int       `json:"priority"`
}

// EnhancedProduct is a Product plus every derived classification. It is
// recomputed on demand and never persisted.
type EnhancedProduct struct {
	Product

	IsNew              bool               `json:"isNew"`
	IsOnSale           bool               `json:"isOnSale"`
	IsPopular          bool               `json:"isPopular"`
	IsTrending         bool               `json:"isTrending"`
	StockStatus        StockStatus        `json:"stockStatus"`
	StockCount         int                `json:"stockCount"`
	DiscountPercentage int                `json:"discountPercentage"`
	OriginalPrice      *float64           `json:"originalPrice,omitempty"`
	PopularityScore    float64            `json:"popularityScore"`
	Badges             []Badge            `json:"badges"`
	PriceCategory      PriceCategory      `json:"priceCategory"`
	RatingCategory     RatingCategory     `json:"ratingCategory"`
	AvailabilityStatus AvailabilityStatus `json:"availabilityStatus"`
}

// BadgeLabels returns the badge labels in display order.
func (p EnhancedProduct) BadgeLabels() []string {
	labels := make([]string, len(p.Badges))
	for i, b := range p.Badges {
		labels[i] = b.Label
	}
	return labels
}

// Tags returns every tag value the product answers to: its category, price
// and rating categories, and badge types.
func (p EnhancedProduct) Tags() []string {
	tags := make([]string, 0, 3+len(p.Badges))
	tags = append(tags, p.Category, string(p.PriceCategory), string(p.RatingCategory))
	for _, b := range p.Badges {
		tags = append(tags, string(b.Type))
	}
	return tags
}

// ProductStats summarises a product collection.
type ProductStats struct {
	TotalProducts        int               `json:"totalProducts"`
	AveragePrice         float64           `json:"averagePrice"`
	AverageRating        float64           `json:"averageRating"`
	CategoryDistribution map[string]int    `json:"categoryDistribution"`
	PriceRanges          PriceDistribution `json:"priceRanges"`
	StockDistribution    StockDistribution `json:"stockDistribution"`
}

// PriceDistribution counts products per price category.
type PriceDistribution struct {
	Budget   int `json:"budget"`
	MidRange int `json:"midRange"`
	Premium  int `json:"premium"`
}

// StockDistribution counts products per stock status.
type StockDistribution struct {
	InStock    int `json:"inStock"`
	LowStock   int `json:"lowStock"`
	OutOfStock int `json:"outOfStock"`
}

// PriceRange is an inclusive price interval.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
