// Package catalog fetches product records from the public catalog API and
// caches them in Redis.
package catalog

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
)

// Source supplies raw catalog records.
type Source interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id int) (domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
}
