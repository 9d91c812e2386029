package search

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
)

// TrendingMinCount is the review volume a product must exceed to trend.
const TrendingMinCount = 50

// RecommendationOptions tunes a recommendation helper. Zero values take the
// helper's default.
type RecommendationOptions struct {
	MaxResults int
	ExcludeIDs []int
	MinRating  float64
}

var (
	frequentlyBoughtDefaults = RecommendationOptions{MaxResults: 4, MinRating: 3.5}
	similarDefaults          = RecommendationOptions{MaxResults: 6, MinRating: 3.0}
	trendingDefaults         = RecommendationOptions{MaxResults: 8, MinRating: 4.0}
	byCategoryDefaults       = RecommendationOptions{MaxResults: 12, MinRating: 3.0}
	personalizedDefaults     = RecommendationOptions{MaxResults: 8, MinRating: 3.5}
)

func (o RecommendationOptions) withDefaults(d RecommendationOptions) RecommendationOptions {
	if o.MaxResults <= 0 {
		o.MaxResults = d.MaxResults
	}
	if o.MinRating <= 0 {
		o.MinRating = d.MinRating
	}
	return o
}

func (o RecommendationOptions) excluded(id int) bool {
	return slices.Contains(o.ExcludeIDs, id)
}

// priceSimilarity is 1 for equal prices and falls towards 0 as they diverge.
func priceSimilarity(a, b float64) float64 {
	hi := math.Max(a, b)
	if hi <= 0 {
		return 1
	}
	return 1 - math.Abs(a-b)/hi
}

// FrequentlyBoughtTogether suggests companions for product: same category or
// within half its price, ranked by Score.
func FrequentlyBoughtTogether(product domain.Product, all []domain.Product, opts RecommendationOptions) []domain.Product {
	opts = opts.withDefaults(frequentlyBoughtDefaults)
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.ID == product.ID || opts.excluded(p.ID) || p.Rating.Rate < opts.MinRating {
			continue
		}
		if p.Category == product.Category || math.Abs(p.Price-product.Price) < product.Price*0.5 {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, byScoreDesc)
	return truncate(out, opts.MaxResults)
}

// SimilarProducts ranks same-category products by closeness in price and
// rating, weighted by their own rating.
func SimilarProducts(product domain.Product, all []domain.Product, opts RecommendationOptions) []domain.Product {
	opts = opts.withDefaults(similarDefaults)
	score := func(p domain.Product) float64 {
		ratingSim := 1 - math.Abs(p.Rating.Rate-product.Rating.Rate)/5
		return (priceSimilarity(p.Price, product.Price)*0.3 + ratingSim*0.7) * p.Rating.Rate
	}

	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.ID == product.ID || opts.excluded(p.ID) || p.Rating.Rate < opts.MinRating || p.Category != product.Category {
			continue
		}
		out = append(out, p)
	}
	slices.SortStableFunc(out, func(a, b domain.Product) int {
		return cmp.Compare(score(b), score(a))
	})
	return truncate(out, opts.MaxResults)
}

// ProductsByCategory returns the best scored products of category, matched
// case-insensitively.
func ProductsByCategory(category string, all []domain.Product, opts RecommendationOptions) []domain.Product {
	opts = opts.withDefaults(byCategoryDefaults)
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if !strings.EqualFold(p.Category, category) || opts.excluded(p.ID) || p.Rating.Rate < opts.MinRating {
			continue
		}
		out = append(out, p)
	}
	slices.SortStableFunc(out, byScoreDesc)
	return truncate(out, opts.MaxResults)
}

// RecommendedCategories ranks every category by average rating and size when
// no category is selected, and otherwise offers the first few others.
func RecommendedCategories(current string, categories []string, all []domain.Product) []string {
	if current != "" {
		out := make([]string, 0, 4)
		for _, c := range categories {
			if c != current && len(out) < 4 {
				out = append(out, c)
			}
		}
		return out
	}

	type ranked struct {
		name  string
		score float64
	}
	rankedCats := make([]ranked, 0, len(categories))
	for _, c := range categories {
		var count int
		var sum float64
		for _, p := range all {
			if p.Category == c {
				count++
				sum += p.Rating.Rate
			}
		}
		var avg float64
		if count > 0 {
			avg = sum / float64(count)
		}
		rankedCats = append(rankedCats, ranked{name: c, score: avg * math.Log(float64(count)+1)})
	}
	slices.SortStableFunc(rankedCats, func(a, b ranked) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]string, 0, min(len(rankedCats), 6))
	for _, r := range rankedCats[:min(len(rankedCats), 6)] {
		out = append(out, r.name)
	}
	return out
}

// PersonalizedRecommendations ranks unseen products by how often their
// category was viewed, price closeness to the viewed average, and rating.
// Without any history it falls back to TrendingProducts.
func PersonalizedRecommendations(viewed, all []domain.Product, opts RecommendationOptions, rng *rand.Rand) []domain.Product {
	if len(viewed) == 0 {
		return TrendingProducts(all, opts, rng)
	}
	opts = opts.withDefaults(personalizedDefaults)

	prefs := make(map[string]int)
	seen := make(map[int]struct{}, len(viewed))
	var priceSum float64
	for _, v := range viewed {
		prefs[v.Category]++
		seen[v.ID] = struct{}{}
		priceSum += v.Price
	}
	avgPrice := priceSum / float64(len(viewed))

	score := func(p domain.Product) float64 {
		return float64(prefs[p.Category])*0.4 + priceSimilarity(p.Price, avgPrice)*0.2 + p.Rating.Rate*0.4
	}

	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if _, ok := seen[p.ID]; ok || opts.excluded(p.ID) || p.Rating.Rate < opts.MinRating {
			continue
		}
		out = append(out, p)
	}
	slices.SortStableFunc(out, func(a, b domain.Product) int {
		return cmp.Compare(score(b), score(a))
	})
	return truncate(out, opts.MaxResults)
}
