package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Sessions owns one Store per session id. A session's store is restored
// from the repository the first time it is requested.
type Sessions struct {
	repo      repository.CartRepository
	committer Committer
	logger    *slog.Logger
	opts      []Option

	mu     sync.Mutex
	stores map[string]*Store
}

// NewSessions creates a registry. opts are applied to every new Store.
func NewSessions(repo repository.CartRepository, committer Committer, logger *slog.Logger, opts ...Option) *Sessions {
	return &Sessions{
		repo:      repo,
		committer: committer,
		logger:    logger,
		opts:      opts,
		stores:    make(map[string]*Store),
	}
}

// Get returns the session's store, restoring it on first use.
func (r *Sessions) Get(ctx context.Context, sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	r.mu.Lock()
	s, ok := r.stores[sessionID]
	r.mu.Unlock()
	if ok {
		return s, nil
	}

	items, err := r.repo.Get(ctx, sessionID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("restore cart: %w", err)
	}

	opts := append([]Option{WithSessionID(sessionID), WithItems(items)}, r.opts...)
	created := NewStore(r.committer, r.logger, opts...)

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[sessionID]; ok {
		created.Close()
		return s, nil
	}
	r.stores[sessionID] = created
	activeSessions.Inc()
	return created, nil
}

// Len returns the number of stores held in memory.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// Evict drops stores idle for longer than idle. Their contents stay in the
// repository and are restored on next use.
func (r *Sessions) Evict(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()
	var n int
	for id, s := range r.stores {
		if s.LastUsed().Before(cutoff) {
			s.Close()
			delete(r.stores, id)
			n++
		}
	}
	activeSessions.Sub(float64(n))
	return n
}

// RunEvictor evicts idle stores every interval until ctx is done.
func (r *Sessions) RunEvictor(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Evict(idle); n > 0 {
				r.logger.DebugContext(ctx, "evicted idle carts", slog.Int("count", n))
			}
		}
	}
}

// Items returns the session's items without restoring a store.
func (r *Sessions) Items(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	r.mu.Lock()
	s, ok := r.stores[sessionID]
	r.mu.Unlock()
	if ok {
		return s.State().Items, nil
	}
	items, err := r.repo.Get(ctx, sessionID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return []domain.CartItem{}, nil
	}
	return items, err
}
