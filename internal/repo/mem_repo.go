package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-gin-product-api/internal/domain"
)

// MemUserRepo 进程内实现，db.driver=memory 时使用（本地调试 / 集成测试）
type MemUserRepo struct {
	mu     sync.RWMutex
	nextID uint
	byID   map[uint]domain.User
}

func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{byID: map[uint]domain.User{}}
}

func (r *MemUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.byID {
		if v.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	r.nextID++
	now := time.Now()
	u.ID, u.CreatedAt, u.UpdatedAt = r.nextID, now, now
	r.byID[u.ID] = *u
	return nil
}

func (r *MemUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *MemUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email }), nil
}

func (r *MemUserRepo) FindByCredentials(_ context.Context, email, passwordHash string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email && u.Password == passwordHash }), nil
}

func (r *MemUserRepo) find(match func(domain.User) bool) *domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if match(u) {
			return &u
		}
	}
	return nil
}

type MemProductRepo struct {
	mu     sync.RWMutex
	nextID uint
	byID   map[uint]domain.Product
}

func NewMemProductRepo() *MemProductRepo {
	return &MemProductRepo{byID: map[uint]domain.Product{}}
}

func (r *MemProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now()
	p.ID, p.CreatedAt, p.UpdatedAt = r.nextID, now, now
	r.byID[p.ID] = *p
	return nil
}

func (r *MemProductRepo) FindByID(_ context.Context, id uint) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *MemProductRepo) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Product, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemProductRepo) Update(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	cur.Name, cur.Price, cur.UpdatedAt = p.Name, p.Price, time.Now()
	r.byID[p.ID] = cur
	return nil
}

func (r *MemProductRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

var (
	_ domain.UserRepository    = (*MemUserRepo)(nil)
	_ domain.ProductRepository = (*MemProductRepo)(nil)
	_ domain.UserRepository    = (*UserRepo)(nil)
	_ domain.ProductRepository = (*ProductRepo)(nil)
)
