package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"go.opentelemetry.io/otel/attribute"

	"github.com/utafrali/storefront/internal/cart"
	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/classifier"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/engine"
	"github.com/utafrali/storefront/internal/search"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/pagination"
	"github.com/utafrali/storefront/pkg/slug"
	"github.com/utafrali/storefront/pkg/tracing"
)

// ProductDetail is a single enhanced product with its recommendations.
type ProductDetail struct {
	Product                  domain.EnhancedProduct   `json:"product"`
	StockText                string                   `json:"stockText"`
	Similar                  []domain.EnhancedProduct `json:"similar"`
	FrequentlyBoughtTogether []domain.EnhancedProduct `json:"frequentlyBoughtTogether"`
}

// CategorySummary is a category with its URL slug and product count.
type CategorySummary struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// CategoryProducts is one page of a category listing.
type CategoryProducts struct {
	Category CategorySummary                           `json:"category"`
	Products pagination.Result[domain.EnhancedProduct] `json:"products"`
}

// CatalogStats aggregates the whole catalog.
type CatalogStats struct {
	domain.ProductStats
	PriceRange domain.PriceRange `json:"priceRange"`
	Categories []string          `json:"categories"`
}

// StorefrontService implements the browsing, search and cart use cases on
// top of a catalog source.
type StorefrontService struct {
	catalog  catalog.Source
	sessions *cart.Sessions
	recent   *search.RecentSearches
	logger   *slog.Logger
	rng      *rand.Rand
}

// Option configures a StorefrontService.
type Option func(*StorefrontService)

// WithRand sets the random source behind trending and personalized
// rankings. Without it the global source is used.
func WithRand(rng *rand.Rand) Option {
	return func(s *StorefrontService) {
		s.rng = rng
	}
}

// NewStorefrontService creates a new storefront service.
func NewStorefrontService(source catalog.Source, sessions *cart.Sessions, recent *search.RecentSearches, logger *slog.Logger, opts ...Option) *StorefrontService {
	s := &StorefrontService{
		catalog:  source,
		sessions: sessions,
		recent:   recent,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListProducts runs the catalog through enhance, filter and sort, then cuts
// the requested page. An unknown sort key keeps catalog order.
func (s *StorefrontService) ListProducts(ctx context.Context, filters domain.ProductFilters, page pagination.Params) (pagination.Result[domain.EnhancedProduct], error) {
	ctx, span := tracing.Start(ctx, "storefront.list_products",
		attribute.String("sort_by", string(filters.SortBy)),
		attribute.Bool("sort_applied", engine.IsValidSort(filters.SortBy)),
		attribute.Int("page", page.Page),
	)
	defer span.End()

	products, err := s.catalog.Products(ctx)
	if err != nil {
		return pagination.Result[domain.EnhancedProduct]{}, tracing.RecordError(span, fmt.Errorf("list products: %w", err))
	}

	listed := engine.Apply(classifier.EnhanceProducts(products), filters)
	span.SetAttributes(attribute.Int("matched", len(listed)))
	return pagination.Paginate(listed, page), nil
}

// GetProduct returns the enhanced product with similar and
// frequently-bought-together suggestions. Recommendations are omitted if the
// full catalog cannot be loaded.
func (s *StorefrontService) GetProduct(ctx context.Context, id int) (*ProductDetail, error) {
	ctx, span := tracing.Start(ctx, "storefront.get_product", attribute.Int("product.id", id))
	defer span.End()

	if id <= 0 {
		return nil, apperrors.InvalidInput("product id must be positive")
	}

	product, err := s.catalog.Product(ctx, id)
	if err != nil {
		return nil, tracing.RecordError(span, fmt.Errorf("get product: %w", err))
	}

	enhanced := classifier.EnhanceProduct(product)
	detail := &ProductDetail{
		Product:                  enhanced,
		StockText:                classifier.StockStatusText(enhanced.StockStatus, enhanced.StockCount),
		Similar:                  []domain.EnhancedProduct{},
		FrequentlyBoughtTogether: []domain.EnhancedProduct{},
	}

	all, err := s.catalog.Products(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "recommendations unavailable",
			slog.Int("product_id", id),
			slog.String("error", err.Error()),
		)
		return detail, nil
	}
	detail.Similar = classifier.EnhanceProducts(search.SimilarProducts(product, all, search.RecommendationOptions{}))
	detail.FrequentlyBoughtTogether = classifier.EnhanceProducts(search.FrequentlyBoughtTogether(product, all, search.RecommendationOptions{}))
	return detail, nil
}

// Categories lists the catalog categories in catalog order.
func (s *StorefrontService) Categories(ctx context.Context) ([]CategorySummary, error) {
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	counts := make(map[string]int, len(categories))
	for _, p := range products {
		counts[p.Category]++
	}
	out := make([]CategorySummary, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategorySummary{Name: c, Slug: slug.Generate(c), Count: counts[c]})
	}
	return out, nil
}

// ProductsByCategorySlug lists one category, resolved from its slug.
// An unknown sort key leaves the category in catalog order.
func (s *StorefrontService) ProductsByCategorySlug(ctx context.Context, categorySlug string, filters domain.ProductFilters, page pagination.Params) (*CategoryProducts, error) {
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	name, ok := slug.Match(categorySlug, categories)
	if !ok {
		return nil, apperrors.NotFound("category", categorySlug)
	}

	products, err := s.catalog.ProductsByCategory(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("list category %s: %w", name, err)
	}

	listed := engine.Apply(classifier.EnhanceProducts(products), filters)
	return &CategoryProducts{
		Category: CategorySummary{Name: name, Slug: slug.Generate(name), Count: len(products)},
		Products: pagination.Paginate(listed, page),
	}, nil
}

// Stats summarises the catalog.
func (s *StorefrontService) Stats(ctx context.Context) (*CatalogStats, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog stats: %w", err)
	}
	return &CatalogStats{
		ProductStats: classifier.CalculateProductStats(products),
		PriceRange:   classifier.GetPriceRange(products),
		Categories:   classifier.GetUniqueCategories(products),
	}, nil
}

// Popular returns the best scored products. A non-positive limit uses the
// default collection size.
func (s *StorefrontService) Popular(ctx context.Context, limit int) ([]domain.EnhancedProduct, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("popular products: %w", err)
	}
	return classifier.EnhanceProducts(search.PopularProducts(products, limit)), nil
}

// Trending returns well reviewed products in a jittered score order.
func (s *StorefrontService) Trending(ctx context.Context, limit int) ([]domain.EnhancedProduct, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("trending products: %w", err)
	}
	trending := search.TrendingProducts(products, search.RecommendationOptions{MaxResults: limit}, s.rng)
	return classifier.EnhanceProducts(trending), nil
}
