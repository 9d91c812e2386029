package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/validator"
)

// maxListLimit bounds the limit parameter of collection endpoints.
const maxListLimit = 50

// productQuery is the query-string form of domain.ProductFilters.
type productQuery struct {
	Category    string   `json:"category" validate:"max=100"`
	Categories  []string `json:"categories" validate:"max=10,dive,max=100"`
	MinPrice    *float64 `json:"min_price" validate:"omitempty,gte=0"`
	MaxPrice    *float64 `json:"max_price" validate:"omitempty,gte=0"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	StockStatus []string `json:"stock_status" validate:"max=3,dive,oneof=in-stock low-stock out-of-stock"`
	SortBy      string   `json:"sort_by" validate:"max=30"`
	Query       string   `json:"q" validate:"max=100"`
	Tags        []string `json:"tags" validate:"max=20,dive,max=50"`
}

// parseProductQuery reads and validates the product listing parameters.
//
// List parameters accept both repeated keys and comma separated values:
// ?tags=sale&tags=new and ?tags=sale,new are equivalent.
func parseProductQuery(r *http.Request) (domain.ProductFilters, error) {
	values := r.URL.Query()
	q := productQuery{
		Category:    strings.TrimSpace(values.Get("category")),
		Categories:  queryList(values, "categories"),
		StockStatus: queryList(values, "stock_status"),
		SortBy:      strings.TrimSpace(values.Get("sort_by")),
		Query:       strings.TrimSpace(values.Get("q")),
		Tags:        queryList(values, "tags"),
	}

	var err error
	if q.MinPrice, err = queryFloat(values, "min_price"); err != nil {
		return domain.ProductFilters{}, err
	}
	if q.MaxPrice, err = queryFloat(values, "max_price"); err != nil {
		return domain.ProductFilters{}, err
	}
	if q.Rating, err = queryFloat(values, "rating"); err != nil {
		return domain.ProductFilters{}, err
	}
	if err := validator.Validate(q); err != nil {
		return domain.ProductFilters{}, err
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return domain.ProductFilters{}, apperrors.InvalidInput("min_price must not exceed max_price")
	}
	return q.filters(), nil
}

func (q productQuery) filters() domain.ProductFilters {
	f := domain.NewFilters().
		WithCategory(q.Category).
		WithSearchQuery(q.Query).
		WithSortBy(domain.SortBy(q.SortBy))

	if len(q.Categories) > 0 {
		f = f.WithCategories(q.Categories...)
	}
	if q.MinPrice != nil {
		f = f.WithMinPrice(*q.MinPrice)
	}
	if q.MaxPrice != nil {
		f = f.WithMaxPrice(*q.MaxPrice)
	}
	if q.Rating != nil {
		f = f.WithRating(*q.Rating)
	}
	if len(q.StockStatus) > 0 {
		statuses := make([]domain.StockStatus, len(q.StockStatus))
		for i, s := range q.StockStatus {
			statuses[i] = domain.StockStatus(s)
		}
		f = f.WithStockStatus(statuses...)
	}
	if len(q.Tags) > 0 {
		f = f.WithTags(q.Tags...)
	}
	return f
}

func queryList(values url.Values, name string) []string {
	var out []string
	for _, raw := range values[name] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func queryFloat(values url.Values, name string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("%s must be a number", name))
	}
	return &v, nil
}

// queryLimit parses the limit parameter. Absent means 0, which lets the
// service pick its default.
func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > maxListLimit {
		return 0, apperrors.InvalidInput(fmt.Sprintf("limit must be between 1 and %d", maxListLimit))
	}
	return v, nil
}

// badRequest keeps validation errors intact and reports malformed bodies as
// invalid input instead of internal errors.
func badRequest(err error) error {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		return err
	}
	return apperrors.InvalidInput("invalid request body")
}
