package repository

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
)

// CartRepository persists the item list of each session's cart. Transient
// cart state (loading flags, confirmation, error) is never stored.
type CartRepository interface {
	// Get returns the saved items for the session, or a not-found error.
	Get(ctx context.Context, sessionID string) ([]domain.CartItem, error)

	// Save overwrites the session's items and refreshes their expiry.
	Save(ctx context.Context, sessionID string, items []domain.CartItem) error

	// Delete removes the session's cart.
	Delete(ctx context.Context, sessionID string) error
}
