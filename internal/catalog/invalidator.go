package catalog

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
)

// TopicCatalogUpdated carries product and category change notifications.
var TopicCatalogUpdated = pkgkafka.Topic("catalog", "updated")

// Invalidator drops the catalog cache whenever a catalog change event
// arrives.
type Invalidator struct {
	cache  *CachedSource
	logger *slog.Logger
}

// NewInvalidator creates an invalidator for cache.
func NewInvalidator(cache *CachedSource, logger *slog.Logger) *Invalidator {
	return &Invalidator{cache: cache, logger: logger}
}

// Handle satisfies pkg/kafka.Handler.
func (i *Invalidator) Handle(ctx context.Context, event *pkgkafka.Event) error {
	n, err := i.cache.Invalidate(ctx)
	if err != nil {
		return fmt.Errorf("invalidate catalog cache: %w", err)
	}
	i.logger.InfoContext(ctx, "catalog cache invalidated",
		slog.String("event_type", event.EventType),
		slog.String("event_id", event.EventID),
		slog.Int("keys", n),
	)
	return nil
}
