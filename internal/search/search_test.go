package search

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
)

func p(id int, title, category string, price, rate float64, count int) domain.Product {
	return domain.Product{
		ID: id, Title: title, Category: category, Price: price,
		Description: title + " description",
		Rating:      domain.Rating{Rate: rate, Count: count},
	}
}

func fixtures() []domain.Product {
	return []domain.Product{
		p(1, "Mens Casual Shirt", "men's clothing", 22.3, 4.1, 259),
		p(2, "Mens Cotton Jacket", "men's clothing", 55.99, 4.7, 500),
		p(3, "Gold Chain", "jewelery", 695, 4.6, 400),
		p(4, "Silver Ring", "jewelery", 9.99, 3.9, 70),
		p(5, "SanDisk SSD", "electronics", 109, 2.9, 470),
		p(6, "WD Hard Drive", "electronics", 64, 3.3, 203),
		p(7, "Rain Jacket Women", "women's clothing", 39.99, 3.8, 679),
		p(8, "Short Sleeve", "women's clothing", 7.95, 4.5, 146),
		p(9, "Mens Shirt Slim", "men's clothing", 15.99, 2.1, 430),
		p(10, "Mens Shirt Classic", "men's clothing", 12.99, 4.7, 30),
		p(11, "Mens Shirt Oxford", "men's clothing", 19.99, 4.0, 12),
	}
}

var categories = []string{"electronics", "jewelery", "men's clothing", "women's clothing"}

func productIDs(products []domain.Product) []int {
	out := make([]int, len(products))
	for i, pr := range products {
		out[i] = pr.ID
	}
	return out
}

// ============================================================================
// Suggestions
// ============================================================================

func TestSuggestions_ProductsThenCategories(t *testing.T) {
	got := Suggestions("MEN", fixtures(), categories)

	require.Len(t, got, 7)
	for i := 0; i < 5; i++ {
		assert.Equal(t, SuggestionProduct, got[i].Type)
		assert.Nil(t, got[i].Count)
	}
	assert.Equal(t, "product-1", got[0].ID)
	assert.Equal(t, "Mens Casual Shirt", got[0].Text)

	assert.Equal(t, SuggestionCategory, got[5].Type)
	assert.Equal(t, "category-men's clothing", got[5].ID)
	require.NotNil(t, got[5].Count)
	assert.Equal(t, 5, *got[5].Count)
	assert.Equal(t, "women's clothing", got[6].Text)
	assert.Equal(t, 2, *got[6].Count)
}

func TestSuggestions_BlankQuery(t *testing.T) {
	assert.Empty(t, Suggestions("   ", fixtures(), categories))
}

func TestSuggestions_KeepsSurroundingSpaces(t *testing.T) {
	trailing := Suggestions("shirt ", fixtures(), categories)
	ids := make([]string, len(trailing))
	for i, s := range trailing {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{"product-9", "product-10", "product-11"}, ids)

	assert.Len(t, Suggestions("shirt", fixtures(), categories), 4)
	assert.Equal(t, []int{1, 9, 10, 11}, productIDs(SearchResults("shirt ", fixtures())))
}

func TestSearchResults(t *testing.T) {
	assert.Equal(t, []int{3, 4}, productIDs(SearchResults("JEWEL", fixtures())))
	assert.Equal(t, []int{5}, productIDs(SearchResults("ssd", fixtures())))
	assert.Len(t, SearchResults("", fixtures()), 11)
}

func TestSuggestedCategories(t *testing.T) {
	assert.Equal(t, []string{"electronics", "jewelery"}, SuggestedCategories("cloth", categories))
	assert.Equal(t, categories, SuggestedCategories("", categories))
}

func TestTrendingSearches(t *testing.T) {
	got := TrendingSearches("cloth", []string{"Laptop"})

	assert.Equal(t, []string{"electronics", "jewelry", "smartphone", "watch", "shoes", "accessories"}, got)
	assert.Len(t, TrendingSearches("", nil), 6)
}

// ============================================================================
// Popular and trending
// ============================================================================

func TestPopularProducts(t *testing.T) {
	got := PopularProducts(fixtures(), 3)

	// Gold Chain 4.6·ln401, Jacket 4.7·ln501, Rain Jacket 3.8·ln680.
	assert.Equal(t, []int{2, 3, 7}, productIDs(got))
	assert.Len(t, PopularProducts(fixtures(), 0), DefaultPopularLimit)
	assert.Empty(t, PopularProducts(nil, 3))
}

func TestTrendingProducts_RespectsPreconditions(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	got := TrendingProducts(fixtures(), RecommendationOptions{MaxResults: 3}, rng)

	assert.Len(t, got, 3)
	for _, pr := range got {
		assert.Greater(t, pr.Rating.Count, TrendingMinCount)
		assert.GreaterOrEqual(t, pr.Rating.Rate, 4.0)
	}
}

func TestTrendingProducts_SeededIsRepeatable(t *testing.T) {
	a := TrendingProducts(fixtures(), RecommendationOptions{}, rand.New(rand.NewPCG(7, 7)))
	b := TrendingProducts(fixtures(), RecommendationOptions{}, rand.New(rand.NewPCG(7, 7)))

	assert.Equal(t, productIDs(a), productIDs(b))
	assert.ElementsMatch(t, []int{1, 2, 3, 8}, productIDs(a))
}

func TestTrendingProducts_GlobalSource(t *testing.T) {
	got := TrendingProducts(fixtures(), RecommendationOptions{ExcludeIDs: []int{2}}, nil)

	assert.ElementsMatch(t, []int{1, 3, 8}, productIDs(got))
}

// ============================================================================
// Recommendations
// ============================================================================

func TestFrequentlyBoughtTogether(t *testing.T) {
	all := fixtures()
	shirt := all[0]

	got := FrequentlyBoughtTogether(shirt, all, RecommendationOptions{})

	assert.LessOrEqual(t, len(got), 4)
	for _, pr := range got {
		assert.NotEqual(t, shirt.ID, pr.ID)
		assert.GreaterOrEqual(t, pr.Rating.Rate, 3.5)
	}
	// Only same-category shirts and products within half the price qualify.
	assert.Equal(t, []int{2, 10, 11}, productIDs(got))
}

func TestSimilarProducts(t *testing.T) {
	all := fixtures()

	got := SimilarProducts(all[0], all, RecommendationOptions{ExcludeIDs: []int{2}})

	assert.Equal(t, []int{11, 10}, productIDs(got))
}

func TestProductsByCategory_CaseInsensitive(t *testing.T) {
	got := ProductsByCategory("ELECTRONICS", fixtures(), RecommendationOptions{})

	assert.Equal(t, []int{6}, productIDs(got))
}

func TestRecommendedCategories(t *testing.T) {
	assert.Equal(t, []string{"electronics", "jewelery", "women's clothing"},
		RecommendedCategories("men's clothing", categories, fixtures()))

	ranked := RecommendedCategories("", append(categories, "empty"), fixtures())
	require.Len(t, ranked, 5)
	assert.Equal(t, "men's clothing", ranked[0])
	assert.Equal(t, "empty", ranked[4])
}

func TestPersonalizedRecommendations(t *testing.T) {
	all := fixtures()
	viewed := []domain.Product{all[2], all[3]}

	got := PersonalizedRecommendations(viewed, all, RecommendationOptions{MaxResults: 2}, nil)

	require.Len(t, got, 2)
	for _, pr := range got {
		assert.NotContains(t, []int{3, 4}, pr.ID)
	}
}

func TestPersonalizedRecommendations_NoHistoryFallsBackToTrending(t *testing.T) {
	got := PersonalizedRecommendations(nil, fixtures(), RecommendationOptions{}, rand.New(rand.NewPCG(3, 4)))

	for _, pr := range got {
		assert.Greater(t, pr.Rating.Count, TrendingMinCount)
		assert.GreaterOrEqual(t, pr.Rating.Rate, 4.0)
	}
}
