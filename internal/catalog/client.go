package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httpclient"
)

const upstreamName = "catalog"

// Client reads the public catalog API. Retries and circuit breaking belong
// to the injected Doer.
type Client struct {
	baseURL string
	http    httpclient.Doer
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, doer httpclient.Doer) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: doer}
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := httpclient.GetJSON(ctx, c.http, c.baseURL+"/products", upstreamName, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return nonNil(products), nil
}

// Product fetches one record. The API answers unknown ids with an empty
// 200 body, which is reported as not found.
func (c *Client) Product(ctx context.Context, id int) (domain.Product, error) {
	var p *domain.Product
	err := httpclient.GetJSON(ctx, c.http, c.baseURL+"/products/"+strconv.Itoa(id), upstreamName, &p)
	if errors.Is(err, io.EOF) || (err == nil && (p == nil || p.ID == 0)) {
		return domain.Product{}, apperrors.NotFound("product", strconv.Itoa(id))
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return *p, nil
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := httpclient.GetJSON(ctx, c.http, c.baseURL+"/products/categories", upstreamName, &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var products []domain.Product
	u := c.baseURL + "/products/category/" + url.PathEscape(category)
	if err := httpclient.GetJSON(ctx, c.http, u, upstreamName, &products); err != nil {
		return nil, fmt.Errorf("list products in %q: %w", category, err)
	}
	return nonNil(products), nil
}

func nonNil(products []domain.Product) []domain.Product {
	if products == nil {
		return []domain.Product{}
	}
	return products
}
