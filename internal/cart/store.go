// Package cart holds each shopper's cart in memory and commits every
// mutation through a Committer before it becomes visible.
package cart

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/utafrali/storefront/internal/domain"
)

// DefaultConfirmationTTL is how long the add-to-cart confirmation stays up.
const DefaultConfirmationTTL = 3 * time.Second

// User-facing failure messages recorded in CartState.Error.
const (
	MsgAddFailed    = "Failed to add item to cart. Please try again."
	MsgRemoveFailed = "Failed to remove item from cart. Please try again."
	MsgUpdateFailed = "Failed to update quantity. Please try again."
	MsgClearFailed  = "Failed to clear cart. Please try again."
)

// Committer performs the I/O for a staged change. The change is applied to
// the store only when Commit returns nil.
type Committer interface {
	Commit(ctx context.Context, change domain.CartChange) error
}

// CommitFunc adapts a function to Committer.
type CommitFunc func(ctx context.Context, change domain.CartChange) error

func (f CommitFunc) Commit(ctx context.Context, change domain.CartChange) error {
	return f(ctx, change)
}

// Option configures a Store.
type Option func(*Store)

// WithSessionID tags every change with the owning session.
func WithSessionID(id string) Option {
	return func(s *Store) { s.sessionID = id }
}

// WithConfirmationTTL overrides DefaultConfirmationTTL.
func WithConfirmationTTL(d time.Duration) Option {
	return func(s *Store) { s.confirmationTTL = d }
}

// WithItems seeds the store, typically from a persisted snapshot. Items
// with a non-positive quantity are dropped and duplicates are merged.
func WithItems(items []domain.CartItem) Option {
	return func(s *Store) {
		s.items = s.items[:0]
		for _, item := range items {
			if item.Quantity > 0 {
				s.items = mergeItem(s.items, item.Product, item.Quantity)
			}
		}
	}
}

// Store is one shopper's cart. All methods are safe for concurrent use.
//
// Each operation flags its product as loading, waits for its turn to
// commit, stages the mutation against the current items, and applies it
// only after the Committer succeeds. Operations on the same product are not
// rejected while one is in flight; they commit in arrival order and the last
// to finish decides the final quantity.
type Store struct {
	sessionID       string
	committer       Committer
	logger          *slog.Logger
	confirmationTTL time.Duration

	// turn serializes the stage-commit-apply sequence.
	turn chan struct{}

	mu               sync.Mutex
	items            []domain.CartItem
	loading          map[int]int
	loadingEpoch     uint64
	clearing         int
	lastAdded        *domain.Product
	showConfirmation bool
	errMsg           string
	confirmTimer     *time.Timer
	confirmSeq       uint64
	lastUsed         time.Time
	now              func() time.Time
}

// NewStore creates an empty cart. A nil committer makes every commit
// succeed without I/O.
func NewStore(committer Committer, logger *slog.Logger, opts ...Option) *Store {
	if committer == nil {
		committer = CommitFunc(func(context.Context, domain.CartChange) error { return nil })
	}
	s := &Store{
		committer:       committer,
		logger:          logger,
		confirmationTTL: DefaultConfirmationTTL,
		turn:            make(chan struct{}, 1),
		items:           []domain.CartItem{},
		loading:         make(map[int]int),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastUsed = s.now()
	return s
}

// State returns a consistent snapshot. Total and ItemCount are always
// derived from Items.
func (s *Store) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	loading := make([]int, 0, len(s.loading))
	for id := range s.loading {
		loading = append(loading, id)
	}
	slices.Sort(loading)

	items := slices.Clone(s.items)
	state := domain.CartState{
		Items:            items,
		Total:            domain.CalculateCartTotal(items),
		ItemCount:        domain.CalculateItemCount(items),
		LoadingItems:     loading,
		IsLoading:        s.clearing > 0,
		ShowConfirmation: s.showConfirmation,
		Error:            s.errMsg,
	}
	if s.lastAdded != nil {
		p := *s.lastAdded
		state.LastAddedItem = &p
	}
	return state
}

// AddToCart adds quantity units of product, merging with an existing line.
// A quantity below one is treated as one.
func (s *Store) AddToCart(ctx context.Context, product domain.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	return s.run(ctx, operation{
		op:        domain.CartOpAdd,
		productID: product.ID,
		quantity:  quantity,
		failMsg:   MsgAddFailed,
		stage: func(items []domain.CartItem) ([]domain.CartItem, bool) {
			return mergeItem(slices.Clone(items), product, quantity), true
		},
		applied: func() {
			p := product
			s.lastAdded = &p
			s.showConfirmation = true
			s.armConfirmationLocked()
		},
	})
}

// RemoveFromCart drops the line for productID. Removing an absent product
// succeeds without any I/O.
func (s *Store) RemoveFromCart(ctx context.Context, productID int) error {
	return s.run(ctx, operation{
		op:        domain.CartOpRemove,
		productID: productID,
		failMsg:   MsgRemoveFailed,
		stage: func(items []domain.CartItem) ([]domain.CartItem, bool) {
			i := domain.FindItemIndex(items, productID)
			if i < 0 {
				return nil, false
			}
			return slices.Delete(slices.Clone(items), i, i+1), true
		},
	})
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero
// or less removes the line. Updating an absent product is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID, quantity int) error {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, productID)
	}
	return s.run(ctx, operation{
		op:        domain.CartOpUpdate,
		productID: productID,
		quantity:  quantity,
		failMsg:   MsgUpdateFailed,
		stage: func(items []domain.CartItem) ([]domain.CartItem, bool) {
			i := domain.FindItemIndex(items, productID)
			if i < 0 {
				return nil, false
			}
			next := slices.Clone(items)
			next[i].Quantity = quantity
			return next, true
		},
	})
}

// ClearCart empties the cart and resets every transient field.
func (s *Store) ClearCart(ctx context.Context) error {
	return s.run(ctx, operation{
		op:        domain.CartOpClear,
		wholeCart: true,
		failMsg:   MsgClearFailed,
		stage: func([]domain.CartItem) ([]domain.CartItem, bool) {
			return []domain.CartItem{}, true
		},
		applied: func() {
			clear(s.loading)
			s.loadingEpoch++
			s.lastAdded = nil
			s.showConfirmation = false
			s.stopConfirmationLocked()
		},
	})
}

// ClearConfirmation hides the add-to-cart confirmation.
func (s *Store) ClearConfirmation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearConfirmationLocked()
}

// ClearError drops the last failure message.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

func (s *Store) IsInCart(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.FindItemIndex(s.items, productID) >= 0
}

// GetItemQuantity returns the quantity for productID, or 0.
func (s *Store) GetItemQuantity(productID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := domain.FindItemIndex(s.items, productID); i >= 0 {
		return s.items[i].Quantity
	}
	return 0
}

func (s *Store) IsItemLoading(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading[productID] > 0
}

// Close stops the confirmation timer.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopConfirmationLocked()
}

// LastUsed reports when an operation last started.
func (s *Store) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// operation describes one cart mutation for run.
type operation struct {
	op        domain.CartOp
	productID int
	quantity  int
	wholeCart bool
	failMsg   string
	// stage projects the item list after the change; false means the change
	// does not apply and nothing is committed.
	stage func(items []domain.CartItem) ([]domain.CartItem, bool)
	// applied runs under the lock after the projected items are installed.
	applied func()
}

func (s *Store) run(ctx context.Context, o operation) error {
	start := time.Now()
	result := resultSuccess
	defer func() {
		operationsTotal.WithLabelValues(string(o.op), result).Inc()
		operationDuration.WithLabelValues(string(o.op)).Observe(time.Since(start).Seconds())
	}()

	unmark := s.markLoading(o)
	defer unmark()

	select {
	case s.turn <- struct{}{}:
	case <-ctx.Done():
		result = resultFailure
		return s.fail(ctx, o, ctx.Err())
	}
	defer func() { <-s.turn }()

	s.mu.Lock()
	projected, ok := o.stage(s.items)
	if !ok {
		s.errMsg = ""
		s.mu.Unlock()
		result = resultNoop
		return nil
	}
	s.mu.Unlock()

	change := domain.CartChange{
		SessionID: s.sessionID,
		Op:        o.op,
		ProductID: o.productID,
		Quantity:  o.quantity,
		Items:     projected,
	}
	if err := s.committer.Commit(ctx, change); err != nil {
		result = resultFailure
		return s.fail(ctx, o, err)
	}

	s.mu.Lock()
	s.items = projected
	s.errMsg = ""
	if o.applied != nil {
		o.applied()
	}
	s.mu.Unlock()
	return nil
}

// markLoading flags the operation's target and returns the matching unmark.
func (s *Store) markLoading(o operation) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = s.now()

	if o.wholeCart {
		s.clearing++
		return func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.clearing--
		}
	}

	epoch := s.loadingEpoch
	s.loading[o.productID]++
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.loadingEpoch != epoch {
			return
		}
		if s.loading[o.productID]--; s.loading[o.productID] <= 0 {
			delete(s.loading, o.productID)
		}
	}
}

func (s *Store) fail(ctx context.Context, o operation, err error) error {
	s.mu.Lock()
	s.errMsg = o.failMsg
	s.mu.Unlock()

	level := slog.LevelError
	if errors.Is(err, context.Canceled) {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "cart operation failed",
		slog.String("session_id", s.sessionID),
		slog.String("op", string(o.op)),
		slog.Int("product_id", o.productID),
		slog.String("error", err.Error()),
	)
	return &OperationError{Op: o.op, ProductID: o.productID, Message: o.failMsg, Err: err}
}

func (s *Store) armConfirmationLocked() {
	s.stopConfirmationLocked()
	s.confirmSeq++
	seq := s.confirmSeq
	s.confirmTimer = time.AfterFunc(s.confirmationTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.confirmSeq == seq {
			s.clearConfirmationLocked()
		}
	})
}

func (s *Store) stopConfirmationLocked() {
	if s.confirmTimer != nil {
		s.confirmTimer.Stop()
		s.confirmTimer = nil
	}
}

func (s *Store) clearConfirmationLocked() {
	s.showConfirmation = false
	s.lastAdded = nil
	s.stopConfirmationLocked()
}

// mergeItem adds quantity to the line for product, appending a new line
// when there is none.
func mergeItem(items []domain.CartItem, product domain.Product, quantity int) []domain.CartItem {
	if i := domain.FindItemIndex(items, product.ID); i >= 0 {
		items[i].Quantity += quantity
		return items
	}
	return append(items, domain.CartItem{Product: product, Quantity: quantity})
}
