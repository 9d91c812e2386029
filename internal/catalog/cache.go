package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront/internal/domain"
)

const cacheKeyPrefix = "catalog:"

var cacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_catalog_cache_lookups_total",
		Help: "Catalog cache lookups by result (hit, miss, error).",
	},
	[]string{"result"},
)

// CachedSource is a read-through Redis cache in front of a Source. Redis
// failures are logged and the request falls through to the source.
type CachedSource struct {
	source Source
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedSource wraps source with a cache whose entries live for ttl.
func NewCachedSource(source Source, client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *CachedSource {
	return &CachedSource{source: source, client: client, ttl: ttl, logger: logger}
}

func (c *CachedSource) Products(ctx context.Context) ([]domain.Product, error) {
	return readThrough(ctx, c, cacheKeyPrefix+"products", c.source.Products)
}

func (c *CachedSource) Product(ctx context.Context, id int) (domain.Product, error) {
	return readThrough(ctx, c, cacheKeyPrefix+"product:"+strconv.Itoa(id), func(ctx context.Context) (domain.Product, error) {
		return c.source.Product(ctx, id)
	})
}

func (c *CachedSource) Categories(ctx context.Context) ([]string, error) {
	return readThrough(ctx, c, cacheKeyPrefix+"categories", c.source.Categories)
}

func (c *CachedSource) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return readThrough(ctx, c, cacheKeyPrefix+"category:"+category, func(ctx context.Context) ([]domain.Product, error) {
		return c.source.ProductsByCategory(ctx, category)
	})
}

// Invalidate deletes every cached catalog entry.
func (c *CachedSource) Invalidate(ctx context.Context) (int, error) {
	var deleted int
	iter := c.client.Scan(ctx, 0, cacheKeyPrefix+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			n, err := c.client.Del(ctx, batch...).Result()
			if err != nil {
				return deleted, fmt.Errorf("delete catalog keys: %w", err)
			}
			deleted += int(n)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("scan catalog keys: %w", err)
	}
	if len(batch) > 0 {
		n, err := c.client.Del(ctx, batch...).Result()
		if err != nil {
			return deleted, fmt.Errorf("delete catalog keys: %w", err)
		}
		deleted += int(n)
	}
	return deleted, nil
}

func readThrough[T any](ctx context.Context, c *CachedSource, key string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(data, &cached); jsonErr == nil {
			cacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		}
		c.logger.WarnContext(ctx, "discarding corrupt catalog cache entry", slog.String("key", key))
		cacheLookups.WithLabelValues("miss").Inc()
	case errors.Is(err, redis.Nil):
		cacheLookups.WithLabelValues("miss").Inc()
	default:
		cacheLookups.WithLabelValues("error").Inc()
		c.logger.WarnContext(ctx, "catalog cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if data, err := json.Marshal(value); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "catalog cache write failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}
	return value, nil
}
