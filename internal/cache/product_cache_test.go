package cache

import (
	"admin-service/internal/models"
	"admin-service/internal/repository"
	"admin-service/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedProductRepository_ReadThroughAndInvalidate(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	store := memory.NewStore()
	repo := NewCachedProductRepository(store.Products(), rdb, time.Minute)

	p := &models.Product{Name: "Widget", Description: "blue", Quantity: 5, Price: decimal.RequireFromString("10.00")}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("10")))
	assert.True(t, mr.Exists(productKey(p.ID)))

	p.Price = decimal.RequireFromString("12.50")
	require.NoError(t, repo.Update(ctx, p))
	assert.False(t, mr.Exists(productKey(p.ID)))

	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("12.50")))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, mr.Exists(allProductsKey))

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.False(t, mr.Exists(allProductsKey))

	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// served from the negative entry
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCachedProductRepository_FallsBackWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	store := memory.NewStore()
	repo := NewCachedProductRepository(store.Products(), rdb, time.Minute)

	p := &models.Product{Name: "Widget", Quantity: 1, Price: decimal.NewFromInt(3)}
	require.NoError(t, store.Products().Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
}

// racingRepo reads through the cache in the middle of each write, the way a
// concurrent order pricing request would.
type racingRepo struct {
	repository.ProductRepository
	cached *CachedProductRepository
}

func (r *racingRepo) Update(ctx context.Context, p *models.Product) error {
	_, _ = r.cached.GetByID(ctx, p.ID)
	return r.ProductRepository.Update(ctx, p)
}

func (r *racingRepo) Delete(ctx context.Context, id string) error {
	_, _ = r.cached.GetByID(ctx, id)
	return r.ProductRepository.Delete(ctx, id)
}

func TestCachedProductRepository_ReadDuringWriteDoesNotPinOldRow(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestRedis(t)
	store := memory.NewStore()

	inner := &racingRepo{ProductRepository: store.Products()}
	repo := NewCachedProductRepository(inner, rdb, time.Minute)
	inner.cached = repo

	p := &models.Product{Name: "Widget", Description: "blue", Quantity: 5, Price: decimal.RequireFromString("10.00")}
	require.NoError(t, repo.Create(ctx, p))

	p.Price = decimal.RequireFromString("15.00")
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("15.00")), "price %s", got.Price)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
