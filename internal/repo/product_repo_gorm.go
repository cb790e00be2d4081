package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-gin-product-api/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepo) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List 全表按 id 升序
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	ps := make([]domain.Product, 0)
	if err := r.db.WithContext(ctx).Order("id asc").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

// Update 只写 name/price，user_id 不动
func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Model(p).Select("name", "price").Updates(p).Error
}

func (r *ProductRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
