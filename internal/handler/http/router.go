package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

// catalogMaxAge is how long browsers may cache catalog reads.
const catalogMaxAge = time.Minute

// RouterConfig carries the transport settings of the router.
type RouterConfig struct {
	PprofCIDRs     []string
	AllowedOrigins []string
	// RateLimit throttles session-scoped routes. A zero RPS disables it.
	RateLimit middleware.RateLimitConfig
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	svc *service.StorefrontService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	cors := middleware.DefaultCORSConfig()
	if len(cfg.AllowedOrigins) > 0 {
		cors.AllowedOrigins = cfg.AllowedOrigins
	}

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cors))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Tracing)
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	products := NewProductHandler(svc, logger)
	searches := NewSearchHandler(svc, logger)
	carts := NewCartHandler(svc, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(catalogMaxAge))

			r.Get("/products", products.ListProducts)
			r.Get("/products/sort-options", products.SortOptions)
			r.Get("/products/stats", products.Stats)
			r.Get("/products/popular", products.Popular)
			r.Get("/products/trending", products.Trending)
			r.Get("/products/{id}", products.GetProduct)

			r.Get("/categories", products.Categories)
			r.Get("/categories/{slug}/products", products.CategoryProducts)
		})

		// Suggestions vary with the optional session history.
		r.With(middleware.NoStore).Get("/search/suggestions", searches.Suggestions)

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(middleware.RequireSession)
			if cfg.RateLimit.RPS > 0 {
				r.Use(middleware.RateLimit(cfg.RateLimit, logger))
			}

			r.Get("/search/recent", searches.ListRecent)
			r.Post("/search/recent", searches.AddRecent)
			r.Delete("/search/recent", searches.ClearRecent)

			r.Get("/recommendations", searches.Recommendations)

			r.Route("/cart", func(r chi.Router) {
				r.Use(ContentTypeJSON)

				r.Get("/", carts.GetCart)
				r.Delete("/", carts.ClearCart)

				r.Post("/items", carts.AddItem)
				r.Put("/items/{productId}", carts.UpdateItem)
				r.Delete("/items/{productId}", carts.RemoveItem)

				r.Delete("/confirmation", carts.DismissConfirmation)
				r.Delete("/error", carts.DismissError)
			})
		})
	})

	return r
}
