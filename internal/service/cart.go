package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/utafrali/storefront/internal/cart"
	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/tracing"
)

// MaxQuantityPerItem is the largest quantity a single line may hold.
const MaxQuantityPerItem = 100

// Cart returns the session's cart state.
func (s *StorefrontService) Cart(ctx context.Context, sessionID string) (domain.CartState, error) {
	store, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.CartState{}, err
	}
	return store.State(), nil
}

// AddToCart adds quantity units of the catalog product to the cart. The
// product snapshot stored with the line is taken from the catalog.
func (s *StorefrontService) AddToCart(ctx context.Context, sessionID string, productID, quantity int) (domain.CartState, error) {
	ctx, span := tracing.Start(ctx, "storefront.cart.add",
		attribute.Int("product.id", productID),
		attribute.Int("quantity", quantity),
	)
	defer span.End()

	if quantity > MaxQuantityPerItem {
		return domain.CartState{}, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	store, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.CartState{}, tracing.RecordError(span, err)
	}
	if store.GetItemQuantity(productID)+max(quantity, 1) > MaxQuantityPerItem {
		return domain.CartState{}, apperrors.InvalidInput(fmt.Sprintf("combined quantity must not exceed %d", MaxQuantityPerItem))
	}

	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return domain.CartState{}, tracing.RecordError(span, fmt.Errorf("add to cart: %w", err))
	}

	if err := store.AddToCart(ctx, product, quantity); err != nil {
		return store.State(), tracing.RecordError(span, cartError(err))
	}
	return store.State(), nil
}

// UpdateQuantity sets a line's quantity; zero removes the line.
func (s *StorefrontService) UpdateQuantity(ctx context.Context, sessionID string, productID, quantity int) (domain.CartState, error) {
	ctx, span := tracing.Start(ctx, "storefront.cart.update",
		attribute.Int("product.id", productID),
		attribute.Int("quantity", quantity),
	)
	defer span.End()

	if quantity < 0 {
		return domain.CartState{}, apperrors.InvalidInput("quantity must not be negative")
	}
	if quantity > MaxQuantityPerItem {
		return domain.CartState{}, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	store, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.CartState{}, tracing.RecordError(span, err)
	}
	if err := store.UpdateQuantity(ctx, productID, quantity); err != nil {
		return store.State(), tracing.RecordError(span, cartError(err))
	}
	return store.State(), nil
}

// RemoveFromCart drops a line. Removing an absent product succeeds.
func (s *StorefrontService) RemoveFromCart(ctx context.Context, sessionID string, productID int) (domain.CartState, error) {
	ctx, span := tracing.Start(ctx, "storefront.cart.remove", attribute.Int("product.id", productID))
	defer span.End()

	store, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.CartState{}, tracing.RecordError(span, err)
	}
	if err := store.RemoveFromCart(ctx, productID); err != nil {
		return store.State(), tracing.RecordError(span, cartError(err))
	}
	return store.State(), nil
}

// ClearCart empties the cart.
func (s *StorefrontService) ClearCart(ctx context.Context, sessionID string) (domain.CartState, error) {
	ctx, span := tracing.Start(ctx, "storefront.cart.clear")
	defer span.End()

	store, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.CartState{}, tracing.RecordError(span, err)
	}
	if err := store.ClearCart(ctx); err != nil {
		return store.State(), tracing.RecordError(span, cartError(err))
	}
	return store.State(), nil
}

// DismissConfirmation hides the add-to-cart confirmation.
func (s *StorefrontService) DismissConfirmation(ctx context.Context, sessionID string) (domain.CartState, error) {
	store, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.CartState{}, err
	}
	store.ClearConfirmation()
	return store.State(), nil
}

// DismissError clears the last recorded cart failure.
func (s *StorefrontService) DismissError(ctx context.Context, sessionID string) (domain.CartState, error) {
	store, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.CartState{}, err
	}
	store.ClearError()
	return store.State(), nil
}

// cartError exposes the shopper-facing message of a failed commit.
func cartError(err error) error {
	var opErr *cart.OperationError
	if !errors.As(err, &opErr) {
		return err
	}
	appErr := apperrors.ServiceUnavailable("cart", err)
	appErr.Message = opErr.Message
	return appErr
}
