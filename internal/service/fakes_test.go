package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go-gin-product-api/internal/domain"
)

var errBoom = errors.New("boom")

type memUsers struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]domain.User
	err    error
}

func newMemUsers() *memUsers { return &memUsers{byID: map[uint]domain.User{}} }

func (m *memUsers) Create(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, x := range m.byID {
		if x.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	m.nextID++
	u.ID = m.nextID
	m.byID[u.ID] = *u
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id uint) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.byID[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindByCredentials(_ context.Context, email, hash string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if u.Email == email && u.Password == hash {
			return &u, nil
		}
	}
	return nil, nil
}

type memProducts struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]domain.Product
	err    error
	lists  int
}

func newMemProducts() *memProducts { return &memProducts{byID: map[uint]domain.Product{}} }

func (m *memProducts) Create(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	p.ID = m.nextID
	m.byID[p.ID] = *p
	return nil
}

func (m *memProducts) FindByID(_ context.Context, id uint) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.byID[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *memProducts) List(_ context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Product
	for _, p := range m.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProducts) Update(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.byID[p.ID] = *p
	return nil
}

func (m *memProducts) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.byID, id)
	return nil
}

// memCache 模拟 redis 读穿缓存
type memCache struct {
	val         []ProductView
	hit         bool
	invalidated int
	invErr      error
}

func (c *memCache) Load(ctx context.Context, load func(context.Context) ([]ProductView, error)) ([]ProductView, error) {
	if c.hit {
		return c.val, nil
	}
	v, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.val, c.hit = v, true
	return v, nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.invalidated++
	c.hit = false
	return c.invErr
}
