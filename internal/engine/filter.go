// Package engine filters and orders enhanced products. Nothing here mutates
// its input or keeps state, so every function is safe for concurrent use.
package engine

import (
	"slices"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
)

// FilterProductsEnhanced returns the products that satisfy every criterion
// set in f, in their original relative order. Unset criteria always pass.
func FilterProductsEnhanced(products []domain.EnhancedProduct, f domain.ProductFilters) []domain.EnhancedProduct {
	out := make([]domain.EnhancedProduct, 0, len(products))
	m := newMatcher(f)
	for _, p := range products {
		if m.match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether p satisfies every criterion in f.
func Matches(p domain.EnhancedProduct, f domain.ProductFilters) bool {
	return newMatcher(f).match(p)
}

type matcher struct {
	f        domain.ProductFilters
	minPrice *float64
	maxPrice *float64
	query    string
}

func newMatcher(f domain.ProductFilters) matcher {
	return matcher{
		f:        f,
		minPrice: f.EffectiveMinPrice(),
		maxPrice: f.EffectiveMaxPrice(),
		query:    strings.ToLower(f.SearchQuery),
	}
}

func (m matcher) match(p domain.EnhancedProduct) bool {
	if m.f.Category != "" && p.Category != m.f.Category {
		return false
	}
	if len(m.f.Categories) > 0 && !slices.Contains(m.f.Categories, p.Category) {
		return false
	}
	if m.minPrice != nil && p.Price < *m.minPrice {
		return false
	}
	if m.maxPrice != nil && p.Price > *m.maxPrice {
		return false
	}
	if m.f.Rating != nil && p.Rating.Rate < *m.f.Rating {
		return false
	}
	if len(m.f.StockStatus) > 0 && !slices.Contains(m.f.StockStatus, p.StockStatus) {
		return false
	}
	if m.query != "" && !strings.Contains(searchableText(p), m.query) {
		return false
	}
	if len(m.f.Tags) > 0 && !hasAnyTag(p, m.f.Tags) {
		return false
	}
	return true
}

func searchableText(p domain.EnhancedProduct) string {
	parts := make([]string, 0, 3+len(p.Badges))
	parts = append(parts, p.Title, p.Description, p.Category)
	parts = append(parts, p.BadgeLabels()...)
	return strings.ToLower(strings.Join(parts, " "))
}

func hasAnyTag(p domain.EnhancedProduct, tags []string) bool {
	productTags := p.Tags()
	for _, tag := range tags {
		if slices.Contains(productTags, tag) {
			return true
		}
	}
	return false
}
