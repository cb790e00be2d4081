package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-gin-product-api/internal/domain"
)

var (
	annUser = &domain.User{ID: 1, Name: "Ann Lee", Email: "ann@x.com"}
	bobUser = &domain.User{ID: 2, Name: "Bob Ray", Email: "bob@x.com"}
)

func newProductService(repo domain.ProductRepository, cache ListCache, opts ProductOptions) *ProductService {
	return NewProductService(repo, cache, opts, zap.NewNop())
}

func TestProduct_ListEmptyIsNotNil(t *testing.T) {
	s := newProductService(newMemProducts(), nil, ProductOptions{})
	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestProduct_AddAndList(t *testing.T) {
	repo := newMemProducts()
	s := newProductService(repo, nil, ProductOptions{})
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, annUser, "Apple", 1.5))
	require.NoError(t, s.Add(ctx, bobUser, "Pear", 100))

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ProductView{
		{ID: 1, Name: "Apple", Price: 1.5},
		{ID: 2, Name: "Pear", Price: 100},
	}, list)

	assert.Equal(t, annUser.ID, repo.byID[1].UserID)
	assert.Equal(t, bobUser.ID, repo.byID[2].UserID)
}

func TestProduct_AddMissingInput(t *testing.T) {
	repo := newMemProducts()
	s := newProductService(repo, nil, ProductOptions{})
	ctx := context.Background()

	assert.ErrorIs(t, s.Add(ctx, annUser, "", 10), domain.ErrMissingInput)
	assert.ErrorIs(t, s.Add(ctx, annUser, "Apple", 0), domain.ErrMissingInput)
	assert.ErrorIs(t, s.Add(ctx, annUser, "0", 10), domain.ErrMissingInput)
	assert.Empty(t, repo.byID)

	// 负数不是"空"，照常写入
	assert.NoError(t, s.Add(ctx, annUser, "Refund", -5))
}

func TestProduct_Edit(t *testing.T) {
	repo := newMemProducts()
	s := newProductService(repo, nil, ProductOptions{})
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, annUser, "Apple", 1.5))

	// 任意已登录用户都可以编辑
	require.NoError(t, s.Edit(ctx, bobUser, 1, "Green apple", 2))
	p := repo.byID[1]
	assert.Equal(t, "Green apple", p.Name)
	assert.Equal(t, 2.0, p.Price)
	assert.Equal(t, annUser.ID, p.UserID, "owner unchanged")

	assert.ErrorIs(t, s.Edit(ctx, annUser, 0, "x", 1), domain.ErrMissingInput)
	assert.ErrorIs(t, s.Edit(ctx, annUser, 1, "", 1), domain.ErrMissingInput)
	assert.ErrorIs(t, s.Edit(ctx, annUser, 1, "x", 0), domain.ErrMissingInput)
	assert.ErrorIs(t, s.Edit(ctx, annUser, 99, "x", 1), domain.ErrProductNotFound)
}

func TestProduct_Delete(t *testing.T) {
	repo := newMemProducts()
	s := newProductService(repo, nil, ProductOptions{})
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, annUser, "Apple", 1.5))

	assert.ErrorIs(t, s.Delete(ctx, annUser, 0), domain.ErrMissingInput)
	require.NoError(t, s.Delete(ctx, bobUser, 1))
	assert.Empty(t, repo.byID)

	// 重复删除
	err := s.Delete(ctx, bobUser, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.EqualError(t, err, "Product not found")
}

func TestProduct_EnforceOwnership(t *testing.T) {
	repo := newMemProducts()
	s := newProductService(repo, nil, ProductOptions{EnforceOwnership: true})
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, annUser, "Apple", 1.5))

	assert.ErrorIs(t, s.Edit(ctx, bobUser, 1, "Stolen", 1), domain.ErrNotOwner)
	assert.ErrorIs(t, s.Delete(ctx, bobUser, 1), domain.ErrNotOwner)
	assert.Equal(t, "Apple", repo.byID[1].Name)

	assert.NoError(t, s.Edit(ctx, annUser, 1, "Mine", 3))
	assert.NoError(t, s.Delete(ctx, annUser, 1))
}

func TestProduct_CacheReadThroughAndInvalidate(t *testing.T) {
	repo := newMemProducts()
	cache := &memCache{}
	s := newProductService(repo, cache, ProductOptions{})
	ctx := context.Background()

	_, err := s.List(ctx)
	require.NoError(t, err)
	_, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lists, "second list served from cache")

	require.NoError(t, s.Add(ctx, annUser, "Apple", 1))
	assert.Equal(t, 1, cache.invalidated)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 2, repo.lists)

	require.NoError(t, s.Edit(ctx, annUser, 1, "Pear", 2))
	require.NoError(t, s.Delete(ctx, annUser, 1))
	assert.Equal(t, 3, cache.invalidated)

	// 失效失败不影响写操作
	cache.invErr = errBoom
	assert.NoError(t, s.Add(ctx, annUser, "Plum", 3))
}

func TestProduct_StoreErrors(t *testing.T) {
	repo := newMemProducts()
	repo.err = errBoom
	s := newProductService(repo, nil, ProductOptions{})
	ctx := context.Background()

	_, err := s.List(ctx)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, s.Add(ctx, annUser, "Apple", 1), domain.ErrPersistence)
	assert.ErrorIs(t, s.Edit(ctx, annUser, 1, "Apple", 1), domain.ErrPersistence)
	assert.ErrorIs(t, s.Delete(ctx, annUser, 1), domain.ErrPersistence)
}
