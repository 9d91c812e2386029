package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func setupTestRedis(t *testing.T) (*goredis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func sampleItems() []domain.CartItem {
	return []domain.CartItem{
		{
			Product: domain.Product{
				ID: 7, Title: "White Gold Ring", Price: 9.99, Category: "jewelery",
				Image:  "https://img.example.com/7.jpg",
				Rating: domain.Rating{Rate: 3, Count: 400},
			},
			Quantity: 2,
		},
	}
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestCartRepository_Get_Success(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, 24*time.Hour)

	data, err := json.Marshal(sampleItems())
	require.NoError(t, err)
	require.NoError(t, mr.Set("cart:sess-1", string(data)))

	got, err := repo.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sampleItems(), got)
}

func TestCartRepository_Get_NotFound(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewCartRepository(client, time.Hour)

	got, err := repo.Get(context.Background(), "missing")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartRepository_Get_InvalidJSON(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, time.Hour)
	require.NoError(t, mr.Set("cart:bad", "{{not-valid-json"))

	_, err := repo.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal cart")
}

func TestCartRepository_Get_RedisDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, time.Hour)
	mr.Close()

	_, err := repo.Get(context.Background(), "sess-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Save / Delete
// ---------------------------------------------------------------------------

func TestCartRepository_Save_RoundTripAndTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, 24*time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "sess-1", sampleItems()))

	ttl := mr.TTL("cart:sess-1")
	assert.True(t, ttl > 23*time.Hour, "expected TTL > 23h, got %v", ttl)
	assert.True(t, ttl <= 24*time.Hour, "expected TTL <= 24h, got %v", ttl)

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sampleItems(), got)
}

func TestCartRepository_Save_EmptyStoresArray(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, time.Hour)

	require.NoError(t, repo.Save(context.Background(), "sess-1", nil))

	raw, err := mr.Get("cart:sess-1")
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestCartRepository_Delete(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, time.Hour)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "sess-1", sampleItems()))

	require.NoError(t, repo.Delete(ctx, "sess-1"))
	assert.False(t, mr.Exists("cart:sess-1"))

	// Deleting again is not an error.
	require.NoError(t, repo.Delete(ctx, "sess-1"))
}
