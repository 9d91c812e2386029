package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StringListStore keeps small JSON-encoded string lists, such as the recent
// search history, with a sliding expiry.
type StringListStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewStringListStore creates a store whose keys expire ttl after the last
// write. A zero ttl keeps keys forever.
func NewStringListStore(client redis.UniversalClient, ttl time.Duration) *StringListStore {
	return &StringListStore{client: client, ttl: ttl}
}

// Get returns the list under key, or nil when the key is absent.
func (s *StringListStore) Get(ctx context.Context, key string) ([]string, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return values, nil
}

func (s *StringListStore) Set(ctx context.Context, key string, values []string) error {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *StringListStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
