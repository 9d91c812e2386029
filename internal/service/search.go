package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/utafrali/storefront/internal/classifier"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/search"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// maxSearchProducts caps the product matches returned with suggestions.
const maxSearchProducts = 8

// maxQueryLength bounds stored and matched queries.
const maxQueryLength = 100

// SearchSuggestions is everything the search box shows for a query.
type SearchSuggestions struct {
	Query               string                   `json:"query"`
	Suggestions         []search.Suggestion      `json:"suggestions"`
	Products            []domain.EnhancedProduct `json:"products"`
	SuggestedCategories []string                 `json:"suggestedCategories"`
	TrendingSearches    []string                 `json:"trendingSearches"`
	RecentSearches      []string                 `json:"recentSearches"`
}

// Recommendations are personalised picks derived from the session's cart.
type Recommendations struct {
	Products   []domain.EnhancedProduct `json:"products"`
	Categories []string                 `json:"categories"`
}

// Suggest builds type-ahead results. sessionID may be empty, in which case
// no recent searches are consulted. A failing history store degrades to an
// empty history.
func (s *StorefrontService) Suggest(ctx context.Context, query, sessionID string) (*SearchSuggestions, error) {
	if len(query) > maxQueryLength {
		return nil, apperrors.InvalidInput(fmt.Sprintf("query must not exceed %d characters", maxQueryLength))
	}

	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	recent := []string{}
	if sessionID != "" {
		if recent, err = s.recent.List(ctx, sessionID); err != nil {
			s.logger.WarnContext(ctx, "recent searches unavailable", slog.String("error", err.Error()))
			recent = []string{}
		}
	}

	matches := []domain.Product{}
	if strings.TrimSpace(query) != "" {
		matches = search.SearchResults(query, products)
		matches = matches[:min(len(matches), maxSearchProducts)]
	}

	return &SearchSuggestions{
		Query:               query,
		Suggestions:         search.Suggestions(query, products, categories),
		Products:            classifier.EnhanceProducts(matches),
		SuggestedCategories: search.SuggestedCategories(query, categories),
		TrendingSearches:    search.TrendingSearches(query, recent),
		RecentSearches:      recent,
	}, nil
}

// Recommendations uses the session's cart as viewing history. An empty cart
// yields trending products and the best rated categories.
func (s *StorefrontService) Recommendations(ctx context.Context, sessionID string) (*Recommendations, error) {
	items, err := s.sessions.Items(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("recommendations: %w", err)
	}
	all, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("recommendations: %w", err)
	}
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("recommendations: %w", err)
	}

	viewed := make([]domain.Product, 0, len(items))
	excluded := make([]int, 0, len(items))
	for _, item := range items {
		viewed = append(viewed, item.Product)
		excluded = append(excluded, item.Product.ID)
	}

	picks := search.PersonalizedRecommendations(viewed, all,
		search.RecommendationOptions{ExcludeIDs: excluded}, s.rng)
	return &Recommendations{
		Products:   classifier.EnhanceProducts(picks),
		Categories: search.RecommendedCategories(dominantCategory(viewed), categories, all),
	}, nil
}

// dominantCategory is the most frequent category in products, earliest on
// ties, or "" for none.
func dominantCategory(products []domain.Product) string {
	counts := make(map[string]int, len(products))
	var best string
	for _, p := range products {
		counts[p.Category]++
		if counts[p.Category] > counts[best] {
			best = p.Category
		}
	}
	return best
}

// RecentSearches returns the session's history, newest first.
func (s *StorefrontService) RecentSearches(ctx context.Context, sessionID string) ([]string, error) {
	recent, err := s.recent.List(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ServiceUnavailable("search history", err)
	}
	return recent, nil
}

// AddRecentSearch records query and returns the updated history.
func (s *StorefrontService) AddRecentSearch(ctx context.Context, sessionID, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.InvalidInput("query is required")
	}
	if len(query) > maxQueryLength {
		return nil, apperrors.InvalidInput(fmt.Sprintf("query must not exceed %d characters", maxQueryLength))
	}

	recent, err := s.recent.Add(ctx, sessionID, query)
	if err != nil {
		return nil, apperrors.ServiceUnavailable("search history", err)
	}
	return recent, nil
}

// ClearRecentSearches drops the session's history.
func (s *StorefrontService) ClearRecentSearches(ctx context.Context, sessionID string) error {
	if err := s.recent.Clear(ctx, sessionID); err != nil {
		return apperrors.ServiceUnavailable("search history", err)
	}
	return nil
}
