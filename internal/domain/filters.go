package domain

import "slices"

// SortBy names a sort strategy.
type SortBy string

const (
	SortPriceAsc   SortBy = "price-asc"
	SortPriceDesc  SortBy = "price-desc"
	SortRating     SortBy = "rating"
	SortName       SortBy = "name"
	SortPopularity SortBy = "popularity"
	SortNewest     SortBy = "newest"
	SortTrending   SortBy = "trending"
)

// SortOption describes a sort strategy for UI pickers.
type SortOption struct {
	Value     SortBy `json:"value"`
	Label     string `json:"label"`
	Direction string `json:"direction"`
	Field     string `json:"field"`
}

// SortOptions lists the supported strategies in picker order.
func SortOptions() []SortOption {
	return []SortOption{
		{Value: SortPopularity, Label: "Most Popular", Direction: "desc", Field: "popularity"},
		{Value: SortPriceAsc, Label: "Price: Low to High", Direction: "asc", Field: "price"},
		{Value: SortPriceDesc, Label: "Price: High to Low", Direction: "desc", Field: "price"},
		{Value: SortRating, Label: "Highest Rated", Direction: "desc", Field: "rating"},
		{Value: SortName, Label: "Name: A to Z", Direction: "asc", Field: "title"},
		{Value: SortNewest, Label: "Newest First", Direction: "desc", Field: "newest"},
		{Value: SortTrending, Label: "Trending", Direction: "desc", Field: "trending"},
	}
}

// ProductFilters is the query contract between any UI surface and the
// filter and sort engines. Nil pointers and empty slices are neutral.
//
// Values are built with NewFilters and the With* methods, each of which
// returns a new value and leaves the receiver untouched.
type ProductFilters struct {
	Category    string        `json:"category,omitempty"`
	Categories  []string      `json:"categories,omitempty"`
	MinPrice    *float64      `json:"minPrice,omitempty"`
	MaxPrice    *float64      `json:"maxPrice,omitempty"`
	PriceRange  *PriceRange   `json:"priceRange,omitempty"`
	Rating      *float64      `json:"rating,omitempty"`
	StockStatus []StockStatus `json:"stockStatus,omitempty"`
	SortBy      SortBy        `json:"sortBy,omitempty"`
	SearchQuery string        `json:"searchQuery,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
}

// NewFilters returns the empty filter, which matches everything.
func NewFilters() ProductFilters {
	return ProductFilters{}
}

// clone returns a deep copy so builders never share backing arrays.
func (f ProductFilters) clone() ProductFilters {
	c := f
	c.Categories = slices.Clone(f.Categories)
	c.StockStatus = slices.Clone(f.StockStatus)
	c.Tags = slices.Clone(f.Tags)
	if f.MinPrice != nil {
		c.MinPrice = ptr(*f.MinPrice)
	}
	if f.MaxPrice != nil {
		c.MaxPrice = ptr(*f.MaxPrice)
	}
	if f.Rating != nil {
		c.Rating = ptr(*f.Rating)
	}
	if f.PriceRange != nil {
		r := *f.PriceRange
		c.PriceRange = &r
	}
	return c
}

func ptr[T any](v T) *T { return &v }

func (f ProductFilters) WithCategory(category string) ProductFilters {
	c := f.clone()
	c.Category = category
	return c
}

func (f ProductFilters) WithCategories(categories ...string) ProductFilters {
	c := f.clone()
	c.Categories = slices.Clone(categories)
	return c
}

func (f ProductFilters) WithPriceRange(minPrice, maxPrice float64) ProductFilters {
	c := f.clone()
	c.PriceRange = &PriceRange{Min: minPrice, Max: maxPrice}
	return c
}

func (f ProductFilters) WithMinPrice(price float64) ProductFilters {
	c := f.clone()
	c.MinPrice = ptr(price)
	return c
}

func (f ProductFilters) WithMaxPrice(price float64) ProductFilters {
	c := f.clone()
	c.MaxPrice = ptr(price)
	return c
}

func (f ProductFilters) WithRating(minRate float64) ProductFilters {
	c := f.clone()
	c.Rating = ptr(minRate)
	return c
}

func (f ProductFilters) WithStockStatus(statuses ...StockStatus) ProductFilters {
	c := f.clone()
	c.StockStatus = slices.Clone(statuses)
	return c
}

func (f ProductFilters) WithSortBy(sortBy SortBy) ProductFilters {
	c := f.clone()
	c.SortBy = sortBy
	return c
}

func (f ProductFilters) WithSearchQuery(query string) ProductFilters {
	c := f.clone()
	c.SearchQuery = query
	return c
}

func (f ProductFilters) WithTags(tags ...string) ProductFilters {
	c := f.clone()
	c.Tags = slices.Clone(tags)
	return c
}

// Reset returns the empty filter while keeping the sort order.
func (f ProductFilters) Reset() ProductFilters {
	return ProductFilters{SortBy: f.SortBy}
}

// EffectiveMinPrice is PriceRange.Min when a range is set, else MinPrice.
func (f ProductFilters) EffectiveMinPrice() *float64 {
	if f.PriceRange != nil {
		return ptr(f.PriceRange.Min)
	}
	return f.MinPrice
}

// EffectiveMaxPrice is PriceRange.Max when a range is set, else MaxPrice.
func (f ProductFilters) EffectiveMaxPrice() *float64 {
	if f.PriceRange != nil {
		return ptr(f.PriceRange.Max)
	}
	return f.MaxPrice
}

// IsEmpty reports whether no criterion is set. SortBy is not a criterion.
func (f ProductFilters) IsEmpty() bool {
	return f.Category == "" && len(f.Categories) == 0 && f.MinPrice == nil &&
		f.MaxPrice == nil && f.PriceRange == nil && f.Rating == nil &&
		len(f.StockStatus) == 0 && f.SearchQuery == "" && len(f.Tags) == 0
}
