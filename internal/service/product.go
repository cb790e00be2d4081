package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"go-gin-product-api/internal/domain"
)

// ProductView 列表输出的字段
type ProductView struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ListCache 可选的列表读穿缓存（redis）
type ListCache interface {
	Load(ctx context.Context, load func(context.Context) ([]ProductView, error)) ([]ProductView, error)
	Invalidate(ctx context.Context) error
}

type ProductOptions struct {
	// EnforceOwnership 为 true 时只有创建者可以编辑/删除
	EnforceOwnership bool
}

type ProductService struct {
	products domain.ProductRepository
	cache    ListCache
	opts     ProductOptions
	log      *zap.Logger
}

// NewProductService cache 可为 nil
func NewProductService(products domain.ProductRepository, cache ListCache, opts ProductOptions, l *zap.Logger) *ProductService {
	return &ProductService{products: products, cache: cache, opts: opts, log: l}
}

// List 返回全部产品，不分页、不按用户过滤；无数据时返回空切片
func (s *ProductService) List(ctx context.Context) ([]ProductView, error) {
	if s.cache == nil {
		return s.load(ctx)
	}
	return s.cache.Load(ctx, s.load)
}

func (s *ProductService) load(ctx context.Context) ([]ProductView, error) {
	ps, err := s.products.List(ctx)
	if err != nil {
		return nil, domain.Persistence("list products", err)
	}
	out := make([]ProductView, 0, len(ps))
	for _, p := range ps {
		out = append(out, ProductView{ID: p.ID, Name: p.Name, Price: p.Price})
	}
	return out, nil
}

// Add price 为 0 视为缺失
func (s *ProductService) Add(ctx context.Context, owner *domain.User, name string, price float64) error {
	if IsEmpty(name) || price == 0 {
		return domain.ErrMissingInput
	}
	p := &domain.Product{Name: name, Price: price, UserID: owner.ID}
	if err := s.products.Create(ctx, p); err != nil {
		return domain.Persistence("create product", err)
	}
	s.invalidate(ctx)
	return nil
}

// Edit 只改 name/price，创建者不变
func (s *ProductService) Edit(ctx context.Context, caller *domain.User, id uint, name string, price float64) error {
	if id == 0 || IsEmpty(name) || price == 0 {
		return domain.ErrMissingInput
	}
	p, err := s.find(ctx, caller, id)
	if err != nil {
		return err
	}
	p.Name = name
	p.Price = price
	if err := s.products.Update(ctx, p); err != nil {
		return domain.Persistence("update product", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *ProductService) Delete(ctx context.Context, caller *domain.User, id uint) error {
	if id == 0 {
		return domain.ErrMissingInput
	}
	p, err := s.find(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, p.ID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return err
		}
		return domain.Persistence("delete product", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *ProductService) find(ctx context.Context, caller *domain.User, id uint) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Persistence("find product", err)
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	if s.opts.EnforceOwnership && p.UserID != caller.ID {
		return nil, domain.ErrNotOwner
	}
	return p, nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("product list cache invalidate failed", zap.Error(err))
	}
}
