package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
)

// Committer is the I/O phase of a cart mutation: it persists the projected
// items and announces the change. Only persistence failures fail the commit.
type Committer struct {
	repo     repository.CartRepository
	producer *Producer
	logger   *slog.Logger
}

// NewCommitter creates a committer. A nil producer disables events.
func NewCommitter(repo repository.CartRepository, producer *Producer, logger *slog.Logger) *Committer {
	return &Committer{repo: repo, producer: producer, logger: logger}
}

// Commit applies change to the cart store and publishes the matching event.
func (c *Committer) Commit(ctx context.Context, change domain.CartChange) error {
	if change.Op == domain.CartOpClear {
		if err := c.repo.Delete(ctx, change.SessionID); err != nil {
			return fmt.Errorf("delete cart: %w", err)
		}
	} else if err := c.repo.Save(ctx, change.SessionID, change.Items); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	if c.producer == nil {
		return nil
	}

	var err error
	if change.Op == domain.CartOpClear {
		err = c.producer.PublishCartCleared(ctx, change.SessionID)
	} else {
		err = c.producer.PublishCartUpdated(ctx, change)
	}
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to publish cart event",
			slog.String("session_id", change.SessionID),
			slog.String("op", string(change.Op)),
			slog.String("error", err.Error()),
		)
	}
	return nil
}
