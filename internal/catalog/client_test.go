package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httpclient"
)

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Title: "Backpack", Price: 109.95, Category: "men's clothing", Rating: domain.Rating{Rate: 3.9, Count: 120}},
		{ID: 5, Title: "Bracelet", Price: 695, Category: "jewelery", Rating: domain.Rating{Rate: 4.6, Count: 400}},
	}
}

func fakeCatalogAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, sampleProducts())
	})
	mux.HandleFunc("GET /products/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []string{"jewelery", "men's clothing"})
	})
	mux.HandleFunc("GET /products/category/{category}", func(w http.ResponseWriter, r *http.Request) {
		var out []domain.Product
		for _, p := range sampleProducts() {
			if p.Category == r.PathValue("category") {
				out = append(out, p)
			}
		}
		writeJSON(w, out)
	})
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "1":
			writeJSON(w, sampleProducts()[0])
		case "500":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			// The public API answers unknown ids with an empty 200.
			w.WriteHeader(http.StatusOK)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(baseURL string) *Client {
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	cfg.Timeout = 2 * time.Second
	return NewClient(baseURL+"/", httpclient.New(cfg))
}

// ============================================================================
// Client
// ============================================================================

func TestClient_Products(t *testing.T) {
	c := newTestClient(fakeCatalogAPI(t).URL)

	got, err := c.Products(context.Background())

	require.NoError(t, err)
	assert.Equal(t, sampleProducts(), got)
}

func TestClient_Product(t *testing.T) {
	c := newTestClient(fakeCatalogAPI(t).URL)

	got, err := c.Product(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Backpack", got.Title)
}

func TestClient_Product_EmptyBodyIsNotFound(t *testing.T) {
	c := newTestClient(fakeCatalogAPI(t).URL)

	_, err := c.Product(context.Background(), 999)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClient_Product_ServerErrorIsUnavailable(t *testing.T) {
	c := newTestClient(fakeCatalogAPI(t).URL)

	_, err := c.Product(context.Background(), 500)

	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}

func TestClient_Categories(t *testing.T) {
	c := newTestClient(fakeCatalogAPI(t).URL)

	got, err := c.Categories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"jewelery", "men's clothing"}, got)
}

func TestClient_ProductsByCategory_EscapesPath(t *testing.T) {
	c := newTestClient(fakeCatalogAPI(t).URL)

	got, err := c.ProductsByCategory(context.Background(), "men's clothing")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)

	none, err := c.ProductsByCategory(context.Background(), "toys")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).Products(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}

func TestClient_ThroughCircuitBreaker(t *testing.T) {
	srv := fakeCatalogAPI(t)
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	breaker := httpclient.NewCircuitBreakerClient(httpclient.New(cfg),
		httpclient.DefaultCircuitBreakerConfig("catalog-test"), testLogger())
	c := NewClient(srv.URL, breaker)

	got, err := c.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = c.Product(context.Background(), 500)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}
