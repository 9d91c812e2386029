package engine

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/utafrali/storefront/internal/domain"
)

// SortProductsAdvanced returns a sorted copy of products. The sort is stable:
// products that compare equal keep their input order. An unknown sortBy
// returns the copy in input order.
func SortProductsAdvanced(products []domain.EnhancedProduct, sortBy domain.SortBy) []domain.EnhancedProduct {
	sorted := slices.Clone(products)
	if sorted == nil {
		sorted = []domain.EnhancedProduct{}
	}

	cmpFn := comparator(sortBy)
	if cmpFn == nil {
		return sorted
	}
	slices.SortStableFunc(sorted, cmpFn)
	return sorted
}

// IsValidSort reports whether sortBy names a known strategy.
func IsValidSort(sortBy domain.SortBy) bool {
	return slices.ContainsFunc(domain.SortOptions(), func(o domain.SortOption) bool {
		return o.Value == sortBy
	})
}

// Apply filters products by f and orders the survivors by f.SortBy.
func Apply(products []domain.EnhancedProduct, f domain.ProductFilters) []domain.EnhancedProduct {
	return SortProductsAdvanced(FilterProductsEnhanced(products, f), f.SortBy)
}

func comparator(sortBy domain.SortBy) func(a, b domain.EnhancedProduct) int {
	switch sortBy {
	case domain.SortPriceAsc:
		return func(a, b domain.EnhancedProduct) int {
			return cmp.Compare(a.Price, b.Price)
		}
	case domain.SortPriceDesc:
		return func(a, b domain.EnhancedProduct) int {
			return cmp.Compare(b.Price, a.Price)
		}
	case domain.SortRating:
		return func(a, b domain.EnhancedProduct) int {
			return cmp.Or(
				cmp.Compare(b.Rating.Rate, a.Rating.Rate),
				cmp.Compare(b.Rating.Count, a.Rating.Count),
			)
		}
	case domain.SortName:
		// A Collator keeps scratch buffers and is not safe to share.
		c := collate.New(language.English)
		return func(a, b domain.EnhancedProduct) int {
			return c.CompareString(a.Title, b.Title)
		}
	case domain.SortPopularity:
		return func(a, b domain.EnhancedProduct) int {
			return cmp.Compare(b.PopularityScore, a.PopularityScore)
		}
	case domain.SortNewest:
		return func(a, b domain.EnhancedProduct) int {
			return cmp.Or(
				flagFirst(a.IsNew, b.IsNew),
				cmp.Compare(a.Rating.Count, b.Rating.Count),
			)
		}
	case domain.SortTrending:
		return func(a, b domain.EnhancedProduct) int {
			return cmp.Or(
				flagFirst(a.IsTrending, b.IsTrending),
				cmp.Compare(b.PopularityScore, a.PopularityScore),
			)
		}
	default:
		return nil
	}
}

// flagFirst orders true before false.
func flagFirst(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}
