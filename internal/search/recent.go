package search

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

const (
	// RecentSearchesKey is the store key holding the history.
	RecentSearchesKey = "recentSearches"
	// MaxRecentSearches caps the history length.
	MaxRecentSearches = 5
)

// StringListStore persists small ordered string lists by key.
type StringListStore interface {
	Get(ctx context.Context, key string) ([]string, error)
	Set(ctx context.Context, key string, values []string) error
	Clear(ctx context.Context, key string) error
}

// RecentSearches keeps each session's most recent distinct queries,
// newest first.
type RecentSearches struct {
	store StringListStore
}

// NewRecentSearches creates a history backed by store.
func NewRecentSearches(store StringListStore) *RecentSearches {
	return &RecentSearches{store: store}
}

func recentKey(sessionID string) string {
	return RecentSearchesKey + ":" + sessionID
}

// List returns the session's history, newest first.
func (r *RecentSearches) List(ctx context.Context, sessionID string) ([]string, error) {
	values, err := r.store.Get(ctx, recentKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("get recent searches: %w", err)
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

// Add records query at the front of the history, dropping an earlier
// identical entry and anything beyond the cap. Blank queries are ignored.
func (r *RecentSearches) Add(ctx context.Context, sessionID, query string) ([]string, error) {
	current, err := r.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	updated := PushRecent(current, query)
	if slices.Equal(updated, current) {
		return current, nil
	}
	if err := r.store.Set(ctx, recentKey(sessionID), updated); err != nil {
		return nil, fmt.Errorf("save recent searches: %w", err)
	}
	return updated, nil
}

// Clear drops the session's history.
func (r *RecentSearches) Clear(ctx context.Context, sessionID string) error {
	if err := r.store.Clear(ctx, recentKey(sessionID)); err != nil {
		return fmt.Errorf("clear recent searches: %w", err)
	}
	return nil
}

// PushRecent returns history with query moved to the front and truncated to
// MaxRecentSearches. history is not modified.
func PushRecent(history []string, query string) []string {
	q := strings.TrimSpace(query)
	if q == "" {
		return slices.Clone(history)
	}
	out := make([]string, 0, MaxRecentSearches)
	out = append(out, q)
	for _, h := range history {
		if len(out) == MaxRecentSearches {
			break
		}
		if h != q {
			out = append(out, h)
		}
	}
	return out
}
