// Package search provides query suggestions, popularity rankings, product
// recommendations and the per-session recent-search history.
package search

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
)

const (
	maxProductSuggestions  = 5
	maxSuggestedCategories = 4
	maxTrendingSearches    = 6

	// DefaultPopularLimit is the size of the popular collection.
	DefaultPopularLimit = 8
)

// SuggestionType distinguishes product and category suggestions.
type SuggestionType string

const (
	SuggestionProduct  SuggestionType = "product"
	SuggestionCategory SuggestionType = "category"
)

// Suggestion is one type-ahead entry. Count is set for categories only.
type Suggestion struct {
	ID    string         `json:"id"`
	Text  string         `json:"text"`
	Type  SuggestionType `json:"type"`
	Count *int           `json:"count,omitempty"`
}

// trendingSearches is the curated list offered before the shopper types.
var trendingSearches = []string{
	"electronics",
	"jewelry",
	"clothing",
	"men's clothing",
	"women's clothing",
	"smartphone",
	"laptop",
	"watch",
	"shoes",
	"accessories",
}

// Score ranks a product by rating weighted with the log of its review count.
func Score(p domain.Product) float64 {
	return p.Rating.Rate * math.Log(float64(max(p.Rating.Count, 0))+1)
}

func byScoreDesc(a, b domain.Product) int {
	return cmp.Compare(Score(b), Score(a))
}

// matchQuery lower-cases query for substring matching. Surrounding spaces
// are kept, so "shirt " only matches where a word follows; a query that is
// blank after trimming reports false.
func matchQuery(query string) (string, bool) {
	return strings.ToLower(query), strings.TrimSpace(query) != ""
}

// Suggestions returns up to five products whose title contains query,
// followed by every matching category with its product count. A blank
// query yields no suggestions.
func Suggestions(query string, products []domain.Product, categories []string) []Suggestion {
	q, ok := matchQuery(query)
	out := []Suggestion{}
	if !ok {
		return out
	}

	for _, p := range products {
		if len(out) == maxProductSuggestions {
			break
		}
		if strings.Contains(strings.ToLower(p.Title), q) {
			out = append(out, Suggestion{
				ID:   "product-" + strconv.Itoa(p.ID),
				Text: p.Title,
				Type: SuggestionProduct,
			})
		}
	}

	for _, c := range categories {
		if !strings.Contains(strings.ToLower(c), q) {
			continue
		}
		count := 0
		for _, p := range products {
			if p.Category == c {
				count++
			}
		}
		out = append(out, Suggestion{
			ID:    "category-" + c,
			Text:  c,
			Type:  SuggestionCategory,
			Count: &count,
		})
	}
	return out
}

// SearchResults returns products whose title, description or category
// contains query. A blank query returns every product.
func SearchResults(query string, products []domain.Product) []domain.Product {
	q, ok := matchQuery(query)
	if !ok {
		return slices.Clone(products)
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

// PopularProducts returns the top limit products by Score. The ranking is
// deterministic; ties keep input order.
func PopularProducts(products []domain.Product, limit int) []domain.Product {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	sorted := slices.Clone(products)
	slices.SortStableFunc(sorted, byScoreDesc)
	return truncate(sorted, limit)
}

// TrendingProducts returns well reviewed products ranked by Score with a
// random factor in [0.9, 1.1) applied to each, so the order is
// intentionally not reproducible. Pass a seeded rng to pin it down in tests;
// nil uses the global source.
func TrendingProducts(products []domain.Product, opts RecommendationOptions, rng *rand.Rand) []domain.Product {
	opts = opts.withDefaults(trendingDefaults)
	jitter := rand.Float64
	if rng != nil {
		jitter = rng.Float64
	}

	type scored struct {
		p     domain.Product
		score float64
	}
	candidates := make([]scored, 0, len(products))
	for _, p := range products {
		if opts.excluded(p.ID) || p.Rating.Rate < opts.MinRating || p.Rating.Count <= TrendingMinCount {
			continue
		}
		candidates = append(candidates, scored{p: p, score: Score(p) * (jitter()*0.2 + 0.9)})
	}
	slices.SortStableFunc(candidates, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]domain.Product, 0, min(len(candidates), opts.MaxResults))
	for _, c := range candidates[:min(len(candidates), opts.MaxResults)] {
		out = append(out, c.p)
	}
	return out
}

// SuggestedCategories offers categories the query does not already match.
// With a blank query the first few categories are returned.
func SuggestedCategories(query string, categories []string) []string {
	q, ok := matchQuery(query)
	out := make([]string, 0, maxSuggestedCategories)
	for _, c := range categories {
		if len(out) == maxSuggestedCategories {
			break
		}
		if ok && strings.Contains(strings.ToLower(c), q) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// TrendingSearches returns curated searches that neither contain the
// current query nor repeat a recent search.
func TrendingSearches(query string, recent []string) []string {
	q, ok := matchQuery(query)
	seen := make(map[string]struct{}, len(recent))
	for _, r := range recent {
		seen[strings.ToLower(r)] = struct{}{}
	}

	out := make([]string, 0, maxTrendingSearches)
	for _, s := range trendingSearches {
		if len(out) == maxTrendingSearches {
			break
		}
		if ok && strings.Contains(s, q) {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		out = append(out, s)
	}
	return out
}

func truncate[T any](items []T, n int) []T {
	if items == nil {
		return []T{}
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}
